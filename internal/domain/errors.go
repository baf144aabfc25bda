package domain

import "errors"

// Shared sentinel errors. Services wrap storage errors with context but
// surface these unwrapped so controllers can map them to status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)

// ErrInvalidToken is returned when an RSVP token does not match an active
// guest-list entry. Distinct from ErrNotFound so callers can tell a bad
// share link apart from a missing resource.
var ErrInvalidToken = errors.New("invalid rsvp token")
