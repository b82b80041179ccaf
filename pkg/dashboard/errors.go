package dashboard

import "errors"

var (
	// ErrInFlight is returned when the same action is triggered again while its
	// first request is still outstanding. No request is sent.
	ErrInFlight = errors.New("dashboard: action already in progress")
	// ErrNoSelection is returned by actions that need an open appointment.
	ErrNoSelection = errors.New("dashboard: no appointment selected")
	// ErrNotAllowed is returned when the viewer's role does not offer the action.
	ErrNotAllowed = errors.New("dashboard: action not allowed for role")
	// ErrDismissed is returned when the user declined a confirmation or
	// dismissed a prompt. No request is sent.
	ErrDismissed = errors.New("dashboard: dismissed by user")
)
