package session

import (
	"time"

	"github.com/rowneywebster/joyful-cargoparcels/pkg/authapi"
)

// State is the lifecycle position of the session.
type State string

const (
	// StateUninitialized is the zero state before Initialize has run.
	StateUninitialized State = "uninitialized"

	// StateInitializing is the transient state while persisted
	// credentials are being loaded and validated.
	StateInitializing State = "initializing"

	// StateAuthenticated means a user is signed in with a live token.
	StateAuthenticated State = "authenticated"

	// StateAnonymous means nobody is signed in.
	StateAnonymous State = "anonymous"

	// StateUnavailable means initialization could not reach the
	// backend. Stored tokens are kept; the session is neither
	// authenticated nor anonymous until the backend answers.
	StateUnavailable State = "unavailable"
)

// Session is an immutable snapshot of the manager's state. Invariant:
// IsAuthenticated() implies User is non-nil and AccessToken is
// non-empty.
type Session struct {
	State       State
	User        *authapi.User
	AccessToken string
	ExpiresAt   time.Time

	// Loading is set while a login or refresh is in flight.
	Loading bool
}

// IsAuthenticated reports whether a user is signed in.
func (s Session) IsAuthenticated() bool {
	return s.State == StateAuthenticated
}

// IsLoading reports whether the session is still being established:
// before and during initialization, or while a login or refresh is in
// flight.
func (s Session) IsLoading() bool {
	return s.State == StateUninitialized || s.State == StateInitializing || s.Loading
}

// Role returns the signed-in user's role, or the empty role when
// anonymous.
func (s Session) Role() authapi.Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}
