package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNothingToSelect is returned when a menu action has no candidate
	// appointments.
	ErrNothingToSelect = errors.New("tui: nothing to select")
)
