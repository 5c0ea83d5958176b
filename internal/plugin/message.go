package plugin

import (
	"fmt"
	"sync"
)

// MessageKind identifies what a Message asks the editor to do.
type MessageKind int

const (
	// StatusMessage replaces the status line with Text.
	StatusMessage MessageKind = iota
	// RegisterCommand routes Command to Ref.
	RegisterCommand
	// PluginError reports Err raised by plugin code outside a command call.
	PluginError
	// PluginChanged reports that the file at Path was modified on disk.
	PluginChanged
)

// String returns a string representation of the kind.
func (k MessageKind) String() string {
	switch k {
	case StatusMessage:
		return "status"
	case RegisterCommand:
		return "register"
	case PluginError:
		return "error"
	case PluginChanged:
		return "changed"
	default:
		return "unknown"
	}
}

// FuncRef names a function registered by a plugin.
type FuncRef struct {
	PluginID int
	Slot     int
}

// String returns a string representation of the reference.
func (r FuncRef) String() string {
	return fmt.Sprintf("plugin %d fn %d", r.PluginID, r.Slot)
}

// Message is one event travelling from plugins to the editor.
type Message struct {
	Kind     MessageKind
	PluginID int
	Text     string
	Command  string
	Ref      FuncRef
	Err      error
	Path     string
}

// Mailbox is an unbounded multi-producer, single-consumer queue.
// Post may be called from any goroutine and never blocks on the consumer.
type Mailbox struct {
	mu     sync.Mutex
	queue  []Message
	notify func()
}

// NewMailbox creates an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{}
}

// SetNotify installs fn to be called after every Post, outside the lock.
// The editor uses it to wake its blocking input poll.
func (m *Mailbox) SetNotify(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notify = fn
}

// Post appends msg to the queue.
func (m *Mailbox) Post(msg Message) {
	m.mu.Lock()
	m.queue = append(m.queue, msg)
	notify := m.notify
	m.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// Drain removes and returns every queued message in arrival order.
func (m *Mailbox) Drain() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.queue) == 0 {
		return nil
	}
	out := m.queue
	m.queue = nil
	return out
}

// Len returns the number of queued messages.
func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}
