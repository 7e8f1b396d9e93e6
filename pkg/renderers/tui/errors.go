package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C) or chose to
	// quit from the review step.
	ErrAborted = errors.New("tui: aborted")
	// ErrNoWizard is returned when Run is called without a wizard.
	ErrNoWizard = errors.New("tui: wizard is required")
)
