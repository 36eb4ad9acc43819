package events

import "errors"

// ErrNotFound indicates the event id has no matching document.
var ErrNotFound = errors.New("event not found")

// ForbiddenError is an ownership-check failure. The message is surfaced
// verbatim to the caller with a 403 status.
type ForbiddenError struct {
	Message string
}

func (e ForbiddenError) Error() string {
	return e.Message
}

// ValidationError is a rejected event payload; surfaced with a 400 status.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}
