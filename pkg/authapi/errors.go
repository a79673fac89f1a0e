package authapi

import "errors"

var (
	// ErrInvalidCredentials is returned when the backend rejects a
	// email/password pair. The wrapping Error carries the message
	// to show on the login form.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidRefreshToken is returned when the backend rejects a
	// refresh token as invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")

	// ErrUnauthenticated is returned when a bearer-authenticated call
	// is rejected with 401.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrUnavailable is returned when the backend cannot be reached or
	// answers with a server error. It is never an authentication
	// failure and must not tear down a session.
	ErrUnavailable = errors.New("backend unavailable")
)

// Generic fallback messages used when the backend error payload is
// unstructured. Raw payloads are never shown to users.
const (
	genericLoginMessage   = "Unable to sign in. Please check your credentials and try again."
	genericRefreshMessage = "Your session has expired. Please sign in again."
	genericAuthMessage    = "You are not signed in."
)

// Error is an authentication failure with a user-displayable message
// extracted from the backend error payload. It wraps one of the
// sentinel errors above for classification with errors.Is.
type Error struct {
	Code    string
	Message string
	err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.err }

func newError(sentinel error, code, message, fallback string) *Error {
	if message == "" {
		message = fallback
	}
	return &Error{Code: code, Message: message, err: sentinel}
}
