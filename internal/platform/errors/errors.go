package apperrors

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrNotFound               = errors.New("not found")
	ErrNoCandidates           = errors.New("no candidate items")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrSessionClosed          = errors.New("session closed")
)
