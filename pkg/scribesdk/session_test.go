package scribesdk

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// navRecorder captures navigation targets in order.
type navRecorder struct {
	mu    sync.Mutex
	paths []string
}

func (n *navRecorder) NavigateTo(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *navRecorder) visited() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

// authBackend doubles the login and register endpoints.
type authBackend struct {
	mu            sync.Mutex
	loginCalls    int
	registerCalls int
	loginStatus   int // non-zero forces this login status
	registerBody  string
	user          Identity
}

func (a *authBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/token/", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.loginCalls++
		forced := a.loginStatus
		user := a.user
		a.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if forced != 0 {
			w.WriteHeader(forced)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "No active account found with the given credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(TokenResponse{
			Access:  "access-1",
			Refresh: "refresh-1",
			User:    user,
		})
	})
	mux.HandleFunc("POST /auth/register/", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.registerCalls++
		body := a.registerBody
		a.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if body != "" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(body))
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message": "User created successfully"}`))
	})
	return mux
}

func newTestSession(t *testing.T, baseURL string, creds *Credentials) (*SessionManager, *MemStore, *navRecorder) {
	t.Helper()

	client, store := newTestClient(t, baseURL, creds)
	nav := &navRecorder{}
	sessions, err := NewSessionManager(client, nav)
	require.NoError(t, err)
	return sessions, store, nav
}

func TestSessionLogin(t *testing.T) {
	t.Parallel()

	backend := &authBackend{user: Identity{
		ID:    7,
		Email: "amy@example.com",
		Roles: Roles{IsStaff: true, IsActive: true},
	}}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	sessions, store, nav := newTestSession(t, srv.URL, nil)

	require.NoError(t, sessions.Login(t.Context(), "amy@example.com", "hunter2"))

	// Token pair and identity land in the store as one unit.
	creds, err := store.Get()
	require.NoError(t, err)
	require.NotNil(t, creds)
	require.Equal(t, "access-1", creds.AccessToken)
	require.Equal(t, "refresh-1", creds.RefreshToken)
	require.Equal(t, "amy@example.com", creds.Identity.Email)
	require.True(t, creds.Identity.Roles.IsStaff)
	require.False(t, creds.Identity.Roles.IsSuperuser)

	snap := sessions.Snapshot()
	require.True(t, snap.Authenticated())
	require.True(t, snap.Admin(), "staff alone grants admin")

	require.Equal(t, []string{PathDashboard}, nav.visited())
}

func TestSessionLoginFailure(t *testing.T) {
	t.Parallel()

	backend := &authBackend{loginStatus: http.StatusUnauthorized}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	sessions, store, nav := newTestSession(t, srv.URL, nil)

	err := sessions.Login(t.Context(), "amy@example.com", "wrong")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "No active account found with the given credentials", apiErr.Detail)

	// Still anonymous, nothing persisted, nowhere navigated.
	require.False(t, sessions.Snapshot().Authenticated())
	creds, err := store.Get()
	require.NoError(t, err)
	require.Nil(t, creds)
	require.Empty(t, nav.visited())
}

func TestSessionRegisterChainsIntoLogin(t *testing.T) {
	t.Parallel()

	backend := &authBackend{user: Identity{Email: "new@example.com", Roles: Roles{IsActive: true}}}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	sessions, _, nav := newTestSession(t, srv.URL, nil)

	err := sessions.Register(t.Context(), RegisterRequest{
		Email:      "new@example.com",
		Password:   "hunter2",
		FirstName:  "New",
		LastName:   "User",
		InviteCode: "WELCOME",
	})
	require.NoError(t, err)

	backend.mu.Lock()
	registers, logins := backend.registerCalls, backend.loginCalls
	backend.mu.Unlock()
	require.Equal(t, 1, registers)
	require.Equal(t, 1, logins, "registration logs in with the same credentials")

	snap := sessions.Snapshot()
	require.True(t, snap.Authenticated())
	require.False(t, snap.Admin())
	require.Equal(t, []string{PathDashboard}, nav.visited())
}

func TestSessionRegisterValidationFailure(t *testing.T) {
	t.Parallel()

	backend := &authBackend{registerBody: `{"email": ["user with this email already exists."]}`}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	sessions, _, _ := newTestSession(t, srv.URL, nil)

	err := sessions.Register(t.Context(), RegisterRequest{Email: "dup@example.com", Password: "x"})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Contains(t, vErr.Field("email"), "already exists")

	require.False(t, sessions.Snapshot().Authenticated())

	backend.mu.Lock()
	logins := backend.loginCalls
	backend.mu.Unlock()
	require.Zero(t, logins, "failed registration never attempts a login")
}

func TestSessionLogoutIdempotent(t *testing.T) {
	t.Parallel()

	// Logout is local; the base URL is never contacted.
	sessions, store, nav := newTestSession(t, "http://127.0.0.1:1", staleCreds())

	require.True(t, sessions.Snapshot().Authenticated())

	require.NoError(t, sessions.Logout(t.Context()))
	require.NoError(t, sessions.Logout(t.Context()))

	require.False(t, sessions.Snapshot().Authenticated())
	creds, err := store.Get()
	require.NoError(t, err)
	require.Nil(t, creds)
	require.Equal(t, []string{PathAuth, PathAuth}, nav.visited())
}

func TestSessionRestoredFromStore(t *testing.T) {
	t.Parallel()

	creds := staleCreds()
	creds.Identity.Roles.IsSuperuser = true
	sessions, _, _ := newTestSession(t, "http://127.0.0.1:1", creds)

	snap := sessions.Snapshot()
	require.True(t, snap.Authenticated())
	require.True(t, snap.Admin())
	require.Equal(t, "amy@example.com", snap.Identity.Email)
}

func TestSessionForcedLogout(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{
		validAccess:   "fresh-access",
		validRefresh:  "good-refresh",
		nextAccess:    "fresh-access",
		refreshStatus: http.StatusUnauthorized,
	}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	client, store := newTestClient(t, srv.URL, staleCreds())
	nav := &navRecorder{}
	sessions, err := NewSessionManager(client, nav)
	require.NoError(t, err)
	require.True(t, sessions.Snapshot().Authenticated())

	_, err = client.ListBlogs(t.Context())
	require.ErrorIs(t, err, ErrAuthExpired)

	// The manager observed the gateway's forced logout.
	require.False(t, sessions.Snapshot().Authenticated())
	creds, err := store.Get()
	require.NoError(t, err)
	require.Nil(t, creds)
	require.Equal(t, []string{PathAuth}, nav.visited())
}

func TestSnapshotIsACopy(t *testing.T) {
	t.Parallel()

	sessions, _, _ := newTestSession(t, "http://127.0.0.1:1", staleCreds())

	snap := sessions.Snapshot()
	require.NoError(t, sessions.Logout(t.Context()))

	// The snapshot taken before logout still reads authenticated.
	require.True(t, snap.Authenticated())
	require.False(t, sessions.Snapshot().Authenticated())
}
