package session

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("too many active sessions")
	ErrRegistryClosed  = errors.New("session registry closed")
)
