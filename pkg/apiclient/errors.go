package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthenticated matches 401 responses that survived the
	// single refresh-and-retry attempt.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden matches 403 responses: the session is valid but the
	// role does not permit the operation. The session is untouched.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound matches 404 responses.
	ErrNotFound = errors.New("resource not found")

	// ErrUnavailable matches transport failures and 5xx responses.
	// Distinct from authentication failures: the backend being down
	// never demotes a session.
	ErrUnavailable = errors.New("backend unavailable")
)

// APIError is a non-2xx backend response. Code and Message come from
// the backend error payload when it is structured; Message is empty
// otherwise and callers fall back to their own wording.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// Is maps status codes onto the package sentinels so callers can use
// errors.Is without inspecting status codes themselves.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthenticated:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnavailable:
		return e.StatusCode >= http.StatusInternalServerError
	}
	return false
}
