package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C) or declined
	// the final confirmation.
	ErrAborted = errors.New("tui: aborted")
	// ErrReadOnly is returned when a read-only collection is attempted.
	ErrReadOnly = errors.New("tui: read-only forms cannot be collected")
)
