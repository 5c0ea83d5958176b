package lua

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrNotFunction is returned when a call target is not a function.
	ErrNotFunction = errors.New("not a function")
)

// PanicError is returned when Go code running inside the interpreter
// panicked instead of raising a Lua error.
type PanicError struct {
	Value any
	// Err is the interpreter error that carried the panic, if any.
	Err error
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("lua panic: %v", e.Value)
}

// Unwrap returns the interpreter error.
func (e *PanicError) Unwrap() error {
	return e.Err
}

// asPanic turns the error gopher-lua returns for a recovered Go panic into
// a *PanicError. Other errors are returned unchanged.
func asPanic(err error) error {
	var apiErr *lua.ApiError
	if !errors.As(err, &apiErr) || apiErr.Type != lua.ApiErrorPanic {
		return err
	}
	var value any = apiErr.Error()
	if apiErr.Object != nil {
		value = apiErr.Object.String()
	}
	return &PanicError{Value: value, Err: err}
}

// Message returns the Lua-level message of err without the stack trace
// gopher-lua attaches to runtime errors.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *lua.ApiError
	if errors.As(err, &apiErr) && apiErr.Object != nil {
		return apiErr.Object.String()
	}
	return err.Error()
}
