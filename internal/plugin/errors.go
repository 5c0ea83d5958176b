package plugin

import (
	"errors"
	"fmt"

	plua "github.com/dshills/tabby/internal/plugin/lua"
)

// Plugin system errors.
var (
	// ErrPluginNotFound is returned when no loaded plugin matches an id or name.
	ErrPluginNotFound = errors.New("no such plugin")

	// ErrFunctionNotFound is returned when a FuncRef slot does not exist.
	ErrFunctionNotFound = errors.New("no such plugin function")

	// ErrHostDisabled is returned when loading while the host is disabled.
	ErrHostDisabled = errors.New("plugin host is disabled")
)

// ScriptError is an error raised by plugin code.
type ScriptError struct {
	// Plugin is the plugin name, or its path if it never finished loading.
	Plugin string
	// Op is what the host was doing: "load", "init" or "call".
	Op string
	// Err is the error returned by the interpreter.
	Err error
}

// Error implements the error interface.
func (e *ScriptError) Error() string {
	return fmt.Sprintf("plugin %s: %s: %s", e.Plugin, e.Op, plua.Message(e.Err))
}

// Unwrap returns the underlying error.
func (e *ScriptError) Unwrap() error {
	return e.Err
}
