package scribesdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Admin operations. These require staff or superuser capability server-side;
// the CLI additionally gates them behind the admin route guard.

// ListUsers returns every account with ban details.
func (c *Client) ListUsers(ctx context.Context) ([]AdminUser, error) {
	var out []AdminUser
	if err := c.do(ctx, &request{method: http.MethodGet, path: "/management/users/"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUser provisions an account directly, bypassing self-registration.
// The invite code is still consumed.
func (c *Client) CreateUser(ctx context.Context, email, password, inviteCode string) (*AdminUser, error) {
	body := map[string]string{
		"email":       email,
		"password":    password,
		"invite_code": inviteCode,
	}

	var out AdminUser
	if err := c.do(ctx, &request{method: http.MethodPost, path: "/management/users/", body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes an account by username.
func (c *Client) DeleteUser(ctx context.Context, username string) error {
	path := "/management/users/" + url.PathEscape(username) + "/"
	return c.do(ctx, &request{method: http.MethodDelete, path: path}, nil)
}

// BanUser bans the account with the given email.
func (c *Client) BanUser(ctx context.Context, email, reason string) (*BanRecord, error) {
	body := map[string]string{"email": email, "reason": reason}

	var out BanRecord
	if err := c.do(ctx, &request{method: http.MethodPost, path: "/management/ban/", body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListInvites returns all invite codes.
func (c *Client) ListInvites(ctx context.Context) ([]Invite, error) {
	var out []Invite
	if err := c.do(ctx, &request{method: http.MethodGet, path: "/management/invites/"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateInvite mints an invite code usable maxUses times.
func (c *Client) CreateInvite(ctx context.Context, maxUses int) (*Invite, error) {
	body := map[string]int{"max_uses": maxUses}

	var out Invite
	if err := c.do(ctx, &request{method: http.MethodPost, path: "/management/invites/", body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteInvite revokes an invite code.
func (c *Client) DeleteInvite(ctx context.Context, code string) error {
	path := fmt.Sprintf("/management/invites/%s/", url.PathEscape(code))
	return c.do(ctx, &request{method: http.MethodDelete, path: path}, nil)
}

// GetStats returns service-wide counters.
func (c *Client) GetStats(ctx context.Context) (*Stats, error) {
	var out Stats
	if err := c.do(ctx, &request{method: http.MethodGet, path: "/management/stats/"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
