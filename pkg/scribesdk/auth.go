package scribesdk

import (
	"context"
	"net/http"
)

// ObtainToken exchanges credentials for a token pair and the identity record.
// This is the raw endpoint call; SessionManager.Login is the usual entry
// point, which also persists the result and transitions the session.
func (c *Client) ObtainToken(ctx context.Context, email, password string) (*TokenResponse, error) {
	body := map[string]string{"email": email, "password": password}

	var out TokenResponse
	if err := c.doPublic(ctx, http.MethodPost, "/auth/token/", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account. Registration never yields a session on its
// own; follow with a login.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Identity, error) {
	var out Identity
	if err := c.doPublic(ctx, http.MethodPost, "/auth/register/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh mints a new access token from a refresh token. The gateway calls
// this through its single-flight gate; calling it directly bypasses the
// store update.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	body := map[string]string{"refresh": refreshToken}

	var out RefreshResponse
	if err := c.doPublic(ctx, http.MethodPost, "/auth/token/refresh/", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword rotates the account password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{"old_password": oldPassword, "new_password": newPassword}
	return c.do(ctx, &request{method: http.MethodPost, path: "/auth/password/change/", body: body}, nil)
}

// UpdateTheme stores the account's UI theme preference.
func (c *Client) UpdateTheme(ctx context.Context, theme string) error {
	body := map[string]string{"ui_theme": theme}
	return c.do(ctx, &request{method: http.MethodPost, path: "/auth/theme/", body: body}, nil)
}

// DeleteAccount permanently removes the authenticated account. The caller
// should log out afterwards; the server-side tokens are dead either way.
func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.do(ctx, &request{method: http.MethodDelete, path: "/auth/delete-account/"}, nil)
}
