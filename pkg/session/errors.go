package session

import "errors"

var (
	// ErrNotAuthenticated is returned when an operation needs an
	// active session and there is none.
	ErrNotAuthenticated = errors.New("no active session")

	// ErrAlreadyInitialized is returned when Initialize is called more
	// than once.
	ErrAlreadyInitialized = errors.New("session already initialized")

	// ErrSessionExpired is returned to refresh waiters when the
	// refresh token was rejected and the session has been torn down.
	ErrSessionExpired = errors.New("session expired")
)
