package scribesdk

import "time"

// Roles carries the capability flags the backend attaches to an identity.
type Roles struct {
	IsStaff     bool `json:"is_staff"`
	IsSuperuser bool `json:"is_superuser"`
	IsActive    bool `json:"is_active"`
}

// Identity is the cached user record returned by the login endpoint and
// persisted alongside the token pair.
type Identity struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	UITheme   string `json:"ui_theme,omitempty"`
	Roles     Roles  `json:"roles"`
}

// Admin reports whether the identity carries admin capability. Staff and
// superuser are deliberately collapsed into one predicate so callers never
// recompute the OR themselves.
func (id *Identity) Admin() bool {
	return id != nil && (id.Roles.IsStaff || id.Roles.IsSuperuser)
}

// Credentials is the unit the credential store persists: the token pair plus
// the identity it was minted for. Both tokens are always present together.
type Credentials struct {
	AccessToken  string
	RefreshToken string
	Identity     Identity
}

// TokenResponse is the body of POST /auth/token/.
type TokenResponse struct {
	Access  string   `json:"access"`
	Refresh string   `json:"refresh"`
	User    Identity `json:"user"`
}

// RefreshResponse is the body of POST /auth/token/refresh/. The server does
// not rotate refresh tokens today; Refresh is decoded anyway so a future
// rotating scheme is picked up without a client change.
type RefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// RegisterRequest is the body of POST /auth/register/.
type RegisterRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	InviteCode string `json:"invite_code"`
}

// BlogPost is a generated document.
type BlogPost struct {
	ID           int       `json:"id"`
	YoutubeURL   string    `json:"youtube_url"`
	YoutubeTitle string    `json:"youtube_title"`
	BlogTitle    string    `json:"blog_title"`
	Content      string    `json:"content"`
	AuthorName   string    `json:"author_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BanInfo describes an active ban on an admin user listing.
type BanInfo struct {
	Reason    string     `json:"reason"`
	BannedAt  time.Time  `json:"banned_at"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// AdminUser is a user row from the management listing.
type AdminUser struct {
	ID         int        `json:"id"`
	Email      string     `json:"email"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	IsActive   bool       `json:"is_active"`
	DateJoined time.Time  `json:"date_joined"`
	LastLogin  *time.Time `json:"last_login"`
	IsBanned   bool       `json:"is_banned"`
	BanInfo    *BanInfo   `json:"ban_info"`
}

// BanRecord is the body returned by POST /management/ban/.
type BanRecord struct {
	Reason    string     `json:"reason"`
	BannedBy  string     `json:"banned_by"`
	BannedAt  time.Time  `json:"banned_at"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// Invite is an invite code as listed by the management endpoints.
type Invite struct {
	ID        int        `json:"id"`
	Code      string     `json:"code"`
	CreatedBy string     `json:"created_by"`
	MaxUses   int        `json:"max_uses"`
	Uses      int        `json:"uses"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at"`
	IsValid   bool       `json:"is_valid"`
}

// Stats is the service-wide counters payload from GET /management/stats/.
type Stats struct {
	TotalUsers     int            `json:"total_users"`
	ActiveUsers    int            `json:"active_users"`
	TotalBlogs     int            `json:"total_blogs"`
	ActiveInvites  int            `json:"active_invites"`
	BlogsThisMonth int            `json:"blogs_this_month"`
	UsersThisMonth int            `json:"users_this_month"`
	InviteUsage    map[string]int `json:"invite_usage"`
}
