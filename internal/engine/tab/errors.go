package tab

import "errors"

// Errors returned by tab operations.
var (
	// ErrIndexOutOfRange indicates a tab index outside the set.
	ErrIndexOutOfRange = errors.New("tab index out of range")

	// ErrAlreadyLast indicates there is no tab after the active one.
	ErrAlreadyLast = errors.New("current tab is already last")

	// ErrAlreadyFirst indicates there is no tab before the active one.
	ErrAlreadyFirst = errors.New("current tab is already first")
)
