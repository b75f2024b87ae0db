// Package session owns the authentication session lifecycle: it exchanges an
// external identity credential for a bearer token, verifies and refreshes it,
// and exposes the current (user, token, status) triple to the rest of the app.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/me/unishop/internal/store"
	"github.com/me/unishop/pkg/model"
)

// Remote is the subset of the API client the session manager depends on.
type Remote interface {
	ExchangeGoogleCredential(ctx context.Context, credential string) (string, *model.UserProfile, error)
	VerifySession(ctx context.Context, token string) (*model.UserProfile, error)
	RefreshToken(ctx context.Context, token string) (string, error)
	Logout(ctx context.Context, token string) error
}

// Listener receives a snapshot after every settled state transition.
type Listener func(model.Session)

// Manager is the session state machine. All mutations go through its
// operations; consumers read via Snapshot or subscribe for transitions.
type Manager struct {
	remote Remote
	store  store.Store
	logger *slog.Logger

	mu        sync.Mutex
	current   model.Session
	listeners []Listener
}

// NewManager creates a session manager in the Authenticating state: the
// caller is expected to run Restore before anything else, mirroring app
// bootstrap.
func NewManager(remote Remote, st store.Store, logger *slog.Logger) *Manager {
	return &Manager{
		remote: remote,
		store:  st,
		logger: logger.With("component", "session"),
		current: model.Session{
			Status: model.StatusAuthenticating,
		},
	}
}

// Subscribe registers a listener for session transitions. Listeners are
// invoked outside the manager's lock, in registration order.
func (m *Manager) Subscribe(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// Snapshot returns a copy of the current session.
func (m *Manager) Snapshot() model.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() model.Session {
	s := m.current
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// settle applies a transition and notifies listeners outside the lock.
func (m *Manager) settle(status model.SessionStatus, token string, user *model.UserProfile) {
	m.mu.Lock()
	m.current = model.Session{Token: token, User: user, Status: status}
	snap := m.snapshotLocked()
	listeners := make([]Listener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	m.logger.Debug("session transition", "status", status)
	for _, l := range listeners {
		l(snap)
	}
}

// Restore checks the persisted session at bootstrap. A persisted token is
// only a cache of the last known session; the server verify call is the
// authority. Every failure mode (no persisted pair, network error, 401,
// malformed body) is absorbed into the Unauthenticated state — Restore
// never returns an authentication error to its caller.
func (m *Manager) Restore(ctx context.Context) model.Session {
	m.settle(model.StatusAuthenticating, "", nil)

	token, cached, err := m.store.LoadSession(ctx)
	if err != nil {
		m.logger.Warn("read persisted session", "error", err)
		m.purge(ctx)
		m.settle(model.StatusUnauthenticated, "", nil)
		return m.Snapshot()
	}
	if token == "" {
		m.settle(model.StatusUnauthenticated, "", nil)
		return m.Snapshot()
	}

	// Adopt the server-returned profile, not the cached one: role and
	// profile fields may have changed server-side since the last run.
	user, err := m.remote.VerifySession(ctx, token)
	if err != nil {
		m.logger.Info("persisted session rejected", "error", err, "cached_user", cached.ID)
		m.purge(ctx)
		m.settle(model.StatusUnauthenticated, "", nil)
		return m.Snapshot()
	}

	if err := m.store.SaveSession(ctx, token, user); err != nil {
		m.logger.Warn("persist verified session", "error", err)
	}
	m.settle(model.StatusAuthenticated, token, user)
	return m.Snapshot()
}

// Authenticate exchanges an identity credential for a session. Unlike
// Restore this runs inside an explicit user action, so rejection surfaces
// as model.ErrAuthenticationFailed.
func (m *Manager) Authenticate(ctx context.Context, credential string) error {
	if credential == "" {
		return fmt.Errorf("%w: empty credential", model.ErrValidation)
	}

	m.settle(model.StatusAuthenticating, "", nil)

	token, user, err := m.remote.ExchangeGoogleCredential(ctx, credential)
	if err != nil {
		m.purge(ctx)
		m.settle(model.StatusUnauthenticated, "", nil)
		return err
	}

	if err := m.store.SaveSession(ctx, token, user); err != nil {
		m.logger.Warn("persist session", "error", err)
	}
	m.settle(model.StatusAuthenticated, token, user)
	m.logger.Info("authenticated", "user_id", user.ID)
	return nil
}

// Refresh rotates the session token. It requires an authenticated session;
// on any failure the session is forcibly signed out — a half-valid session
// is unsafe to keep — and Refresh reports false.
func (m *Manager) Refresh(ctx context.Context) bool {
	m.mu.Lock()
	if !m.current.IsAuthenticated() {
		m.mu.Unlock()
		return false
	}
	token := m.current.Token
	user := m.current.User
	m.mu.Unlock()

	m.settle(model.StatusRefreshing, token, user)

	newToken, err := m.remote.RefreshToken(ctx, token)
	if err != nil {
		m.logger.Info("refresh failed, signing out", "error", err)
		m.settle(model.StatusExpired, "", nil)
		m.SignOut(ctx)
		return false
	}

	if err := m.store.SaveToken(ctx, newToken); err != nil {
		m.logger.Warn("persist refreshed token", "error", err)
	}
	m.settle(model.StatusAuthenticated, newToken, user)
	return true
}

// SignOut ends the session. The remote logout call is best-effort — its
// failure is swallowed so that local sign-out always succeeds. Idempotent.
func (m *Manager) SignOut(ctx context.Context) {
	m.mu.Lock()
	token := m.current.Token
	m.mu.Unlock()

	if token != "" {
		if err := m.remote.Logout(ctx, token); err != nil {
			m.logger.Debug("remote logout failed", "error", err)
		}
	}

	m.purge(ctx)
	m.settle(model.StatusUnauthenticated, "", nil)
}

// UpdateProfile merges a partial edit into the cached user record and
// persists it. No server round-trip: the server copy is refreshed
// opportunistically on the next Restore or Authenticate.
func (m *Manager) UpdateProfile(ctx context.Context, update model.ProfileUpdate) error {
	m.mu.Lock()
	if m.current.User == nil {
		m.mu.Unlock()
		return model.ErrNoSession
	}
	merged := update.Apply(*m.current.User)
	token := m.current.Token
	status := m.current.Status
	m.mu.Unlock()

	if err := m.store.SaveUser(ctx, &merged); err != nil {
		return fmt.Errorf("persist profile: %w", err)
	}
	m.settle(status, token, &merged)
	return nil
}

func (m *Manager) purge(ctx context.Context) {
	if err := m.store.ClearSession(ctx); err != nil {
		m.logger.Warn("clear persisted session", "error", err)
	}
}
