package dispatcher

import (
	"sort"
	"sync"

	"github.com/dshills/tabby/internal/plugin"
)

// HandlerKind tells native and scripted handlers apart.
type HandlerKind int

const (
	// Native handlers are Go functions installed at startup.
	Native HandlerKind = iota
	// Scripted handlers are plugin functions registered at runtime.
	Scripted
)

// String returns a string representation of the kind.
func (k HandlerKind) String() string {
	switch k {
	case Native:
		return "native"
	case Scripted:
		return "scripted"
	default:
		return "unknown"
	}
}

// NativeFunc implements a built-in command. It reports success by setting
// ctx.Status and failure by returning an error.
type NativeFunc func(ctx *Context, args []string) error

// Handler is the target of a command name.
// Native is set for Native handlers, Script for Scripted ones.
type Handler struct {
	Kind   HandlerKind
	Native NativeFunc
	Script plugin.FuncRef
}

// Registry maps command names to handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

// RegisterNative installs fn under name.
func (r *Registry) RegisterNative(name string, fn NativeFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = Handler{Kind: Native, Native: fn}
}

// RegisterScripted routes name to a plugin function, replacing any
// existing handler. It returns the handler that was replaced, if any.
func (r *Registry) RegisterScripted(name string, ref plugin.FuncRef) (Handler, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.handlers[name]
	r.handlers[name] = Handler{Kind: Scripted, Script: ref}
	return prev, ok
}

// Lookup returns the handler for name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	return h, ok
}

// Names returns every registered name in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}
