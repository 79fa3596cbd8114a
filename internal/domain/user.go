package domain

import "time"

// User is the principal a request acts as. PasswordHash is an argon2id
// encoded string; it never leaves the server.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	IsActive     bool
	CreatedAt    time.Time
	LastLogin    *time.Time // nil until the first successful login
}
