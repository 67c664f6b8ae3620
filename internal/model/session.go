package model

import "time"

// Session is a persisted session record. The plaintext token is never
// stored; TokenPrefix narrows the lookup and TokenHash verifies it.
// Sessions are issued by the external auth collaborator (or the dev
// bootstrap script) and only read by this service.
type Session struct {
	ID          string    `json:"id"`
	TokenPrefix string    `json:"token_prefix"`
	TokenHash   string    `json:"-"`
	UserEmail   string    `json:"user_email"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
