package dispatcher

import (
	"fmt"

	"github.com/dshills/tabby/internal/engine/tab"
	"github.com/dshills/tabby/internal/logging"
	"github.com/dshills/tabby/internal/plugin"
)

// Mode selects where keystrokes go.
type Mode int

const (
	// ModeCommand sends keystrokes to the command line.
	ModeCommand Mode = iota
	// ModeInsert sends keystrokes to the tab being edited.
	ModeInsert
)

// String returns a string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeCommand:
		return "command"
	case ModeInsert:
		return "insert"
	default:
		return "unknown"
	}
}

// Context is the editor state handed to every handler and to the renderer.
type Context struct {
	// Tabs holds the open documents.
	Tabs *tab.Set

	// Side is the side panel buffer. ShowSide displays it and SideFocus
	// routes insert-mode keystrokes to it instead of the active tab.
	Side      *tab.Tab
	ShowSide  bool
	SideFocus bool

	// Input is the command line; Status the message shown in its place.
	Input  *CommandLine
	Status string
	Mode   Mode

	Registry *Registry
	Aliases  *AliasTable
	History  *History
	Plugins  *plugin.Host

	// Version is reported by !version and exposed to plugins.
	Version string

	// Quit is set by the quit commands; the main loop exits when it sees it.
	Quit bool

	Logger *logging.Logger
}

// NewContext creates a context with one empty tab and empty tables.
// Plugins is left nil for the caller to set.
func NewContext(version string, logger *logging.Logger) *Context {
	if logger == nil {
		logger = logging.NullLogger
	}
	return &Context{
		Tabs:     tab.NewSet(),
		Side:     tab.New("side"),
		Input:    &CommandLine{},
		Registry: NewRegistry(),
		Aliases:  NewAliasTable(),
		History:  NewHistory(),
		Version:  version,
		Logger:   logger,
	}
}

// SetStatus replaces the status line.
func (c *Context) SetStatus(format string, args ...any) {
	if len(args) > 0 {
		format = fmt.Sprintf(format, args...)
	}
	c.Status = format
}

// ReportError shows err in the status line and logs it.
// Usage and lookup errors are logged at debug level, the rest at warn.
func (c *Context) ReportError(err error) {
	if err == nil {
		return
	}
	c.Status = Summary(err)

	kind := Classify(err)
	log := c.Logger.WithComponent("dispatcher").WithField("kind", kind)
	if kind == ErrUsage || kind == ErrLookup {
		log.Debug("%v", err)
	} else {
		log.Warn("%v", err)
	}
}

// Editing returns the buffer insert-mode keystrokes go to.
func (c *Context) Editing() *tab.Tab {
	if c.ShowSide && c.SideFocus {
		return c.Side
	}
	return c.Tabs.Active()
}
