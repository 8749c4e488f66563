package scribesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vidscribe/scribe/pkg/idx"
	"github.com/vidscribe/scribe/pkg/slogx"
)

// refreshSkew is how close to its exp claim an access token may get before
// the gateway refreshes it ahead of a doomed call.
const refreshSkew = 30 * time.Second

// request describes one logical API call. retryAttempted is the once-only
// retry marker: it is part of the request itself rather than implicit
// interceptor state, so a request can never be replayed twice no matter how
// it re-enters the gateway.
type request struct {
	method         string
	path           string
	body           any
	retryAttempted bool
}

// do runs an authorized request: attach bearer, send, and on a 401 refresh
// the access token exactly once and replay. Any other failure propagates
// unchanged.
func (c *Client) do(ctx context.Context, req *request, out any) error {
	creds, err := c.Store.Get()
	if err != nil {
		return fmt.Errorf("credential store: %w", err)
	}

	token := ""
	if creds != nil {
		token = creds.AccessToken
		if tokenNeedsRefresh(token, time.Now()) {
			// The proactive refresh counts as this request's one refresh.
			req.retryAttempted = true
			token, err = c.refreshAccess(ctx)
			if err != nil {
				return fmt.Errorf("%s %s: %w", req.method, req.path, ErrAuthExpired)
			}
		}
	}

	status, body, err := c.send(ctx, req, token)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && creds != nil {
		if req.retryAttempted {
			return fmt.Errorf("%s %s: %w", req.method, req.path, ErrAuthExpired)
		}
		req.retryAttempted = true

		token, err = c.refreshAccess(ctx)
		if err != nil {
			return fmt.Errorf("%s %s: %w", req.method, req.path, ErrAuthExpired)
		}

		status, body, err = c.send(ctx, req, token)
		if err != nil {
			return err
		}
		if status == http.StatusUnauthorized {
			return fmt.Errorf("%s %s: %w", req.method, req.path, ErrAuthExpired)
		}
	}

	return decodeBody(status, body, out)
}

// doPublic runs an unauthenticated request. A 401 here is a real failure,
// not a refresh trigger.
func (c *Client) doPublic(ctx context.Context, method, path string, body, out any) error {
	status, raw, err := c.send(ctx, &request{method: method, path: path, body: body}, "")
	if err != nil {
		return err
	}
	return decodeBody(status, raw, out)
}

// send performs one HTTP exchange and returns the status and full body.
// The body is re-marshalled per send so a replay carries identical content.
func (c *Client) send(ctx context.Context, req *request, token string) (int, []byte, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return 0, nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	var payload io.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.BaseURL+req.path, payload)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	reqID := idx.New().String()
	httpReq.Header.Set("X-Request-ID", reqID)
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return 0, nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}

	slogx.FromContext(ctx).Debug("api request",
		"req_id", reqID,
		"method", req.method,
		"path", req.path,
		"status", resp.StatusCode,
	)

	return resp.StatusCode, body, nil
}

// refreshAccess exchanges the stored refresh token for a new access token.
// Concurrent callers collapse onto a single in-flight refresh and share its
// outcome; refresh-token schemes are not built for concurrent use, so two
// 401s must never each spend the token. On failure the gateway forces a
// logout before callers observe the error.
func (c *Client) refreshAccess(ctx context.Context) (string, error) {
	v, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		creds, err := c.Store.Get()
		if err != nil {
			return nil, err
		}
		if creds == nil {
			return nil, ErrNotAuthenticated
		}

		// The outcome is shared with waiters, so the initiating caller's
		// cancellation must not decide it; only the bounded timeout does.
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.refreshTimeout())
		defer cancel()

		refreshed, err := c.Refresh(rctx, creds.RefreshToken)
		if err != nil {
			c.forceLogout(ctx, err)
			return nil, err
		}

		creds.AccessToken = refreshed.Access
		if refreshed.Refresh != "" {
			creds.RefreshToken = refreshed.Refresh
		}
		// Persist before returning so the replay reads the new token.
		if err := c.Store.Set(creds); err != nil {
			c.forceLogout(ctx, err)
			return nil, err
		}

		slogx.FromContext(ctx).Info("access token refreshed")
		return refreshed.Access, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// forceLogout clears the credential store and notifies the registered
// session handler. It runs at most once per failed refresh (inside the
// single-flight closure), never silently.
func (c *Client) forceLogout(ctx context.Context, cause error) {
	slogx.FromContext(ctx).Warn("token refresh failed, forcing logout", "error", cause)

	if err := c.Store.Clear(); err != nil {
		slogx.FromContext(ctx).Error("clearing credential store failed", "error", err)
	}
	if h := c.expiredHandler(); h != nil {
		h()
	}
}

// decodeBody maps a completed exchange to the caller's result: 2xx decodes
// into out, anything else becomes a typed error with the server's detail
// preserved.
func decodeBody(status int, body []byte, out any) error {
	if status < 200 || status >= 300 {
		return parseErrorResponse(status, body)
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// tokenNeedsRefresh reports whether token is a JWT whose exp claim falls
// within refreshSkew of now. Opaque or claimless tokens report false; the
// 401 path stays authoritative for those.
func tokenNeedsRefresh(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return now.After(claims.ExpiresAt.Add(-refreshSkew))
}
