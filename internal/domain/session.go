package domain

import "time"

// Session binds an opaque token to a user for a bounded time window.
// Rows are soft-deactivated rather than deleted so old logins remain
// auditable. At most one session per user is active at a time.
type Session struct {
	ID        string
	UserID    string
	Token     string // opaque, 256 bits of randomness, unique
	CreatedAt time.Time
	ExpiresAt time.Time
	IsActive  bool
}

// Expired reports whether the session's lifetime has passed at the given time.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
