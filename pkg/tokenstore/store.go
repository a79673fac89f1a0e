package tokenstore

import (
	"errors"
	"time"

	"github.com/rowneywebster/joyful-cargoparcels/pkg/authapi"
)

var (
	// ErrNotFound indicates no credentials are stored.
	ErrNotFound = errors.New("no stored credentials")

	// ErrCorrupt indicates the credentials file exists but cannot be
	// parsed. Callers usually clear and fall back to signed-out.
	ErrCorrupt = errors.New("stored credentials are corrupt")
)

// Credentials is the persisted login state: the token pair plus the
// cached user summary and the access token expiry in epoch
// milliseconds.
type Credentials struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresAt    int64        `json:"expires_at"`
	User         authapi.User `json:"user"`
}

// Expired reports whether the access token expiry has passed at the
// given instant.
func (c Credentials) Expired(now time.Time) bool {
	return now.UnixMilli() >= c.ExpiresAt
}

// ExpiresAtTime returns the expiry as a time.Time.
func (c Credentials) ExpiresAtTime() time.Time {
	return time.UnixMilli(c.ExpiresAt)
}

// Store persists credentials across process restarts. Implementations
// must be safe for concurrent use and must treat the credential fields
// as one unit: Save writes all of them, Clear removes all of them.
type Store interface {
	// Save persists the credentials, replacing any previous ones.
	Save(creds Credentials) error

	// Load returns the stored credentials, or ErrNotFound when absent.
	Load() (Credentials, error)

	// Clear removes all stored credentials. Clearing an empty store is
	// not an error.
	Clear() error
}
