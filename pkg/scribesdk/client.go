package scribesdk

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	// DefaultRefreshTimeout bounds the token refresh call. A wedged refresh
	// would otherwise block every authorized call queued behind the
	// single-flight gate.
	DefaultRefreshTimeout = 10 * time.Second

	defaultRequestTimeout = 30 * time.Second
)

// Client talks to the VidScribe API. Unauthenticated operations go straight
// out; authorized operations run through the request gateway, which attaches
// the stored bearer token, refreshes it once on an authorization failure, and
// replays the failed request (see gateway.go).
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Store holds the credential pair and identity. The gateway reads it on
	// every authorized call and is the only writer of the access-token field.
	Store CredentialStore

	// Limiter optionally paces outbound requests.
	Limiter *rate.Limiter

	// RefreshTimeout bounds the refresh call. Zero means DefaultRefreshTimeout.
	RefreshTimeout time.Duration

	refreshGroup singleflight.Group

	mu        sync.Mutex
	onExpired func()
}

// New returns a client for the API at baseURL backed by the given store.
func New(baseURL string, store CredentialStore) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: defaultRequestTimeout},
		Store:      store,
	}
}

// SetExpiredHandler registers the callback invoked after a forced logout,
// once per failed refresh. The session manager uses it to drop its identity
// and navigate to the entry view.
func (c *Client) SetExpiredHandler(h func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onExpired = h
}

func (c *Client) expiredHandler() func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.onExpired
}

func (c *Client) refreshTimeout() time.Duration {
	if c.RefreshTimeout > 0 {
		return c.RefreshTimeout
	}
	return DefaultRefreshTimeout
}
