package models

import "time"

// Session is a persisted login. TokenHash is the SHA-256 digest of the token
// handed to the client; the raw token is never stored.
type Session struct {
	TokenHash string     `json:"-"`
	UserID    string     `json:"user_id"`
	Username  string     `json:"username"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"` // nil: no expiry
}

// Expired reports whether the session has an expiry that is not after now.
func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !s.ExpiresAt.After(now)
}
