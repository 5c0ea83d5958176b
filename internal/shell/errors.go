package shell

import "errors"

var (
	// ErrEmptyCommand is returned when there is nothing to run.
	ErrEmptyCommand = errors.New("empty command")

	// ErrNoShell is returned when the runner has no shell program configured.
	ErrNoShell = errors.New("no shell program configured")
)
