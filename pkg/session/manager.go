package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rowneywebster/joyful-cargoparcels/pkg/authapi"
	"github.com/rowneywebster/joyful-cargoparcels/pkg/tokenstore"
)

// AuthService is the slice of the auth API the manager drives.
// *authapi.Service implements it.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*authapi.LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*authapi.TokenPair, error)
	Logout(ctx context.Context, accessToken string) error
	CurrentUser(ctx context.Context, accessToken string) (*authapi.User, error)
}

// Manager maintains the single authenticated-session invariant for the
// process. All token reads and writes go through the token store; the
// in-memory copy is a mirror updated under the manager's lock, never a
// second source of truth.
type Manager struct {
	auth   AuthService
	store  tokenstore.Store
	logger *slog.Logger
	now    func() time.Time

	mu      sync.RWMutex
	state   State
	creds   tokenstore.Credentials
	user    *authapi.User
	loading int

	// epoch increments on every login and teardown. A refresh that
	// resolves after the session it belonged to is gone compares
	// epochs and discards its result.
	epoch uint64

	flight singleflight.Group
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger for non-surfaced failures.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithClock overrides the time source (for tests).
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a Manager in the Uninitialized state.
func NewManager(auth AuthService, store tokenstore.Store, opts ...Option) *Manager {
	m := &Manager{
		auth:   auth,
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
		state:  StateUninitialized,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Current returns a snapshot of the session.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Session{
		State:       m.state,
		User:        m.user,
		AccessToken: m.creds.AccessToken,
		ExpiresAt:   time.UnixMilli(m.creds.ExpiresAt),
		Loading:     m.loading > 0,
	}
}

// AccessToken returns the current bearer token, or the empty string
// when nobody is signed in. Implements apiclient.TokenProvider.
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creds.AccessToken
}

// Initialize restores the session from persisted credentials. It runs
// once at process start.
//
// Absent credentials leave the session anonymous. Unexpired ones are
// validated against /auth/me so the cached role is revalidated.
// Expired ones get exactly one refresh; a rejected refresh clears all
// persisted state. A backend that cannot be reached leaves the tokens
// untouched and parks the session in StateUnavailable: "can't reach
// backend" is not "not authenticated".
func (m *Manager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StateUninitialized {
		m.mu.Unlock()
		return ErrAlreadyInitialized
	}
	m.state = StateInitializing
	m.mu.Unlock()

	creds, err := m.store.Load()
	switch {
	case errors.Is(err, tokenstore.ErrNotFound):
		m.enterAnonymous(false)
		return nil
	case errors.Is(err, tokenstore.ErrCorrupt):
		m.logger.Warn("clearing unreadable stored credentials", "error", err)
		m.enterAnonymous(true)
		return nil
	case err != nil:
		m.enterAnonymous(false)
		return fmt.Errorf("load credentials: %w", err)
	}

	// A stored session without a refresh token cannot be renewed;
	// treat it as stale and sign out silently rather than surfacing a
	// phantom session.
	if creds.RefreshToken == "" {
		m.enterAnonymous(true)
		return nil
	}

	refreshed := false
	if creds.Expired(m.now()) {
		pair, err := m.auth.Refresh(ctx, creds.RefreshToken)
		if err != nil {
			return m.initFailure(err)
		}
		// Persist before validating: the refresh may have rotated the
		// refresh token, and losing the rotation on a flaky /auth/me
		// would strand the next run with a dead predecessor.
		creds = m.applyPair(creds, pair)
		m.persist(creds)
		refreshed = true
	}

	user, err := m.auth.CurrentUser(ctx, creds.AccessToken)
	if err != nil && isAuthFailure(err) && !refreshed {
		// The token expires in the future by our clock but the backend
		// disagrees. Spend the one permitted refresh on it.
		pair, rerr := m.auth.Refresh(ctx, creds.RefreshToken)
		if rerr != nil {
			return m.initFailure(rerr)
		}
		creds = m.applyPair(creds, pair)
		m.persist(creds)
		user, err = m.auth.CurrentUser(ctx, creds.AccessToken)
	}
	if err != nil {
		return m.initFailure(err)
	}

	creds.User = *user
	m.persist(creds)
	m.enterAuthenticated(creds)
	return nil
}

// persist writes the credentials, logging rather than failing; the
// in-memory session stays usable when the disk write does not.
func (m *Manager) persist(creds tokenstore.Credentials) {
	if err := m.store.Save(creds); err != nil {
		m.logger.Warn("persist credentials", "error", err)
	}
}

// Login signs in with the given credentials. On failure the session
// state is unchanged and the returned error carries a message fit for
// the login form.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.beginLoading()
	defer m.endLoading()

	res, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}

	creds := tokenstore.Credentials{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		ExpiresAt:    m.now().Add(time.Duration(res.ExpiresIn) * time.Second).UnixMilli(),
		User:         res.User,
	}
	if err := m.store.Save(creds); err != nil {
		return fmt.Errorf("persist credentials: %w", err)
	}
	m.enterAuthenticated(creds)
	return nil
}

// Logout clears the session. The backend logout call is best-effort:
// its failure is logged and returned, but local state is cleared
// unconditionally either way. Callers choose whether to display the
// error.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.RLock()
	token := m.creds.AccessToken
	m.mu.RUnlock()

	var backendErr error
	if token != "" {
		if err := m.auth.Logout(ctx, token); err != nil {
			m.logger.Warn("backend logout failed, clearing local session anyway", "error", err)
			backendErr = err
		}
	}
	m.teardown()
	return backendErr
}

// Refresh exchanges the refresh token for a new pair and returns the
// new access token. Implements apiclient.Refresher.
//
// Concurrent callers collapse into a single backend request and all
// observe the same outcome. A rejected refresh token tears the whole
// session down; every waiter then gets ErrSessionExpired. A refresh
// that resolves after the session was torn down (or replaced by a new
// login) is discarded.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	m.mu.RLock()
	if m.state != StateAuthenticated || m.creds.RefreshToken == "" {
		m.mu.RUnlock()
		return "", ErrNotAuthenticated
	}
	refreshToken := m.creds.RefreshToken
	epoch := m.epoch
	m.mu.RUnlock()

	m.beginLoading()
	defer m.endLoading()

	token, err, _ := m.flight.Do("refresh", func() (any, error) {
		return m.doRefresh(ctx, refreshToken, epoch)
	})
	if err != nil {
		return "", err
	}
	return token.(string), nil
}

func (m *Manager) doRefresh(ctx context.Context, refreshToken string, epoch uint64) (string, error) {
	pair, err := m.auth.Refresh(ctx, refreshToken)
	if err != nil {
		if isAuthFailure(err) {
			if !m.teardownIfCurrent(epoch) {
				return "", ErrNotAuthenticated
			}
			return "", fmt.Errorf("%w: %v", ErrSessionExpired, err)
		}
		return "", err
	}

	// The backend role assignment may have changed since sign-in; the
	// cached user is only a cache.
	user, userErr := m.auth.CurrentUser(ctx, pair.AccessToken)
	if userErr != nil && isAuthFailure(userErr) {
		if !m.teardownIfCurrent(epoch) {
			return "", ErrNotAuthenticated
		}
		return "", fmt.Errorf("%w: %v", ErrSessionExpired, userErr)
	}

	m.mu.Lock()
	if m.epoch != epoch || m.state != StateAuthenticated {
		m.mu.Unlock()
		return "", ErrNotAuthenticated
	}
	m.creds = m.applyPair(m.creds, pair)
	if user != nil {
		m.creds.User = *user
		m.user = user
	} else {
		m.logger.Warn("could not revalidate user after refresh", "error", userErr)
	}
	creds := m.creds
	m.mu.Unlock()

	if err := m.store.Save(creds); err != nil {
		m.logger.Warn("persist refreshed credentials", "error", err)
	}
	return creds.AccessToken, nil
}

// applyPair merges a refreshed token pair into the credentials. The
// backend rotates refresh tokens, but an omitted one keeps its
// predecessor.
func (m *Manager) applyPair(creds tokenstore.Credentials, pair *authapi.TokenPair) tokenstore.Credentials {
	creds.AccessToken = pair.AccessToken
	if pair.RefreshToken != "" {
		creds.RefreshToken = pair.RefreshToken
	}
	creds.ExpiresAt = m.now().Add(time.Duration(pair.ExpiresIn) * time.Second).UnixMilli()
	return creds
}

// initFailure routes an initialization error: authentication failures
// clear everything and land in Anonymous (returned as success, the
// user is simply signed out), anything else keeps the tokens and
// parks the session in StateUnavailable.
func (m *Manager) initFailure(err error) error {
	if isAuthFailure(err) {
		m.enterAnonymous(true)
		return nil
	}
	m.mu.Lock()
	m.state = StateUnavailable
	m.user = nil
	m.mu.Unlock()
	return fmt.Errorf("cannot restore session: %w", err)
}

func (m *Manager) enterAuthenticated(creds tokenstore.Credentials) {
	user := creds.User

	m.mu.Lock()
	m.state = StateAuthenticated
	m.creds = creds
	m.user = &user
	m.epoch++
	m.mu.Unlock()
}

func (m *Manager) enterAnonymous(clear bool) {
	if clear {
		if err := m.store.Clear(); err != nil {
			m.logger.Warn("clear stored credentials", "error", err)
		}
	}

	m.mu.Lock()
	m.state = StateAnonymous
	m.creds = tokenstore.Credentials{}
	m.user = nil
	m.epoch++
	m.mu.Unlock()
}

// teardown erases every trace of the session: both tokens, the expiry
// and the cached user, on disk and in memory.
func (m *Manager) teardown() {
	m.enterAnonymous(true)
}

// teardownIfCurrent tears the session down only when it is still the
// one the caller captured the epoch from. A failure arriving after a
// logout or re-login belongs to a dead session and must not touch the
// replacement's state or stored credentials.
func (m *Manager) teardownIfCurrent(epoch uint64) bool {
	m.mu.Lock()
	if m.epoch != epoch || m.state != StateAuthenticated {
		m.mu.Unlock()
		return false
	}
	m.state = StateAnonymous
	m.creds = tokenstore.Credentials{}
	m.user = nil
	m.epoch++
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		m.logger.Warn("clear stored credentials", "error", err)
	}
	return true
}

func (m *Manager) beginLoading() {
	m.mu.Lock()
	m.loading++
	m.mu.Unlock()
}

func (m *Manager) endLoading() {
	m.mu.Lock()
	m.loading--
	m.mu.Unlock()
}

// isAuthFailure reports whether err means "not authenticated" as
// opposed to "backend unreachable or broken". Only the former may
// demote a session.
func isAuthFailure(err error) bool {
	return errors.Is(err, authapi.ErrInvalidCredentials) ||
		errors.Is(err, authapi.ErrInvalidRefreshToken) ||
		errors.Is(err, authapi.ErrUnauthenticated)
}
