package scribesdk

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vidscribe/scribe/pkg/slogx"
)

// Application views that session transitions navigate to.
const (
	PathAuth         = "/auth"
	PathDashboard    = "/dashboard"
	PathUnauthorized = "/unauthorized"
)

// Navigator receives the navigation side of session transitions: the
// post-login landing view, and the entry view after logout or a forced
// logout.
type Navigator interface {
	NavigateTo(path string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(path string)

func (f NavigatorFunc) NavigateTo(path string) { f(path) }

// Snapshot is the session state consumers read: an identity when
// authenticated, nil when anonymous. It is a copy; holding one across a
// transition does not observe the transition.
type Snapshot struct {
	Identity *Identity
}

func (s Snapshot) Authenticated() bool { return s.Identity != nil }
func (s Snapshot) Admin() bool         { return s.Identity.Admin() }

// SessionManager owns the session state machine: Anonymous or Authenticated,
// with login, register, logout, and forced logout as the only transitions.
// It is the sole writer of the identity; everything else reads Snapshots.
type SessionManager struct {
	client *Client
	store  CredentialStore
	nav    Navigator

	mu       sync.RWMutex
	identity *Identity
}

// NewSessionManager restores the session from the client's credential store
// and registers the manager as the client's forced-logout handler.
func NewSessionManager(client *Client, nav Navigator) (*SessionManager, error) {
	m := &SessionManager{client: client, store: client.Store, nav: nav}

	creds, err := m.store.Get()
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if creds != nil {
		ident := creds.Identity
		m.identity = &ident
	}

	client.SetExpiredHandler(m.handleExpired)
	return m, nil
}

// Snapshot returns the current session state.
func (m *SessionManager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.identity == nil {
		return Snapshot{}
	}
	ident := *m.identity
	return Snapshot{Identity: &ident}
}

// Login authenticates, persists the token pair and identity atomically, and
// navigates to the dashboard. On failure the session stays Anonymous and the
// server's error detail is returned; there is no automatic retry.
func (m *SessionManager) Login(ctx context.Context, email, password string) error {
	resp, err := m.client.ObtainToken(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	creds := &Credentials{
		AccessToken:  resp.Access,
		RefreshToken: resp.Refresh,
		Identity:     resp.User,
	}
	if err := m.store.Set(creds); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	m.setIdentity(&resp.User)

	slogx.FromContext(ctx).Info("logged in", "email", resp.User.Email)
	m.navigate(PathDashboard)
	return nil
}

// Register creates the account and immediately logs in with the same
// credentials; registration alone never yields a session. A duplicate email
// comes back as a *ValidationError naming the email field.
func (m *SessionManager) Register(ctx context.Context, req RegisterRequest) error {
	if _, err := m.client.Register(ctx, req); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return m.Login(ctx, req.Email, req.Password)
}

// Logout clears the credential store, transitions to Anonymous, and
// navigates to the entry view. It is local-only (works offline) and
// idempotent.
func (m *SessionManager) Logout(ctx context.Context) error {
	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	m.setIdentity(nil)

	slogx.FromContext(ctx).Info("logged out")
	m.navigate(PathAuth)
	return nil
}

// handleExpired is the forced-logout transition, invoked by the gateway
// after an unrecoverable refresh failure. The gateway has already cleared
// the store; here the in-memory identity drops and the user lands on the
// entry view.
func (m *SessionManager) handleExpired() {
	m.setIdentity(nil)
	slog.Warn("session expired, signed out")
	m.navigate(PathAuth)
}

func (m *SessionManager) setIdentity(ident *Identity) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ident == nil {
		m.identity = nil
		return
	}
	copied := *ident
	m.identity = &copied
}

func (m *SessionManager) navigate(path string) {
	if m.nav != nil {
		m.nav.NavigateTo(path)
	}
}
