package dispatcher

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"

	"github.com/dshills/tabby/internal/engine/tab"
	"github.com/dshills/tabby/internal/plugin"
)

// Error kinds. Every command failure matches exactly one of them via errors.Is.
var (
	// ErrUsage indicates missing or malformed arguments.
	ErrUsage = errors.New("usage error")

	// ErrIO indicates a file or process failure.
	ErrIO = errors.New("i/o error")

	// ErrScript indicates an error raised by plugin code.
	ErrScript = errors.New("script error")

	// ErrLookup indicates an unknown command, alias or plugin.
	ErrLookup = errors.New("lookup error")

	// ErrState indicates an operation not valid in the current state,
	// such as an out of range tab index.
	ErrState = errors.New("state error")
)

// CommandError is a classified command failure.
type CommandError struct {
	Kind error  // One of the Err* kinds above
	Op   string // Operation, e.g. "!w" or "while opening file"
	Err  error  // Underlying error
}

// NewCommandError creates a CommandError.
func NewCommandError(kind error, op string, err error) *CommandError {
	return &CommandError{Kind: kind, Op: op, Err: err}
}

func (e *CommandError) Error() string {
	if e == nil {
		return ""
	}
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches the error kind as well as the wrapped error.
func (e *CommandError) Is(target error) bool {
	if e == nil {
		return false
	}
	return target == e.Kind
}

// Usagef returns a usage error with a formatted message.
func Usagef(op, format string, args ...any) error {
	return NewCommandError(ErrUsage, op, fmt.Errorf(format, args...))
}

// Lookupf returns a lookup error with a formatted message.
func Lookupf(op, format string, args ...any) error {
	return NewCommandError(ErrLookup, op, fmt.Errorf(format, args...))
}

// Statef returns a state error with a formatted message.
func Statef(op, format string, args ...any) error {
	return NewCommandError(ErrState, op, fmt.Errorf(format, args...))
}

// Wrap classifies err and attaches op. A nil err stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var ce *CommandError
	if errors.As(err, &ce) && ce.Op == op {
		return err
	}
	return NewCommandError(Classify(err), op, err)
}

// Classify returns the kind of err. Errors from the tab, plugin, shell and
// file layers map to their natural kind; anything else is a state error.
func Classify(err error) error {
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce.Kind
	}

	var se *plugin.ScriptError
	var pathErr *fs.PathError
	var exitErr *exec.ExitError

	switch {
	case errors.As(err, &se):
		return ErrScript
	case errors.Is(err, plugin.ErrPluginNotFound), errors.Is(err, plugin.ErrFunctionNotFound):
		return ErrLookup
	case errors.Is(err, tab.ErrIndexOutOfRange), errors.Is(err, tab.ErrAlreadyFirst),
		errors.Is(err, tab.ErrAlreadyLast), errors.Is(err, plugin.ErrHostDisabled):
		return ErrState
	case errors.As(err, &pathErr), errors.As(err, &exitErr),
		errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission), errors.Is(err, exec.ErrNotFound):
		return ErrIO
	default:
		return ErrState
	}
}

// Summary renders err as a single status line.
func Summary(err error) string {
	if err == nil {
		return ""
	}
	return strings.Join(strings.Fields(err.Error()), " ")
}
