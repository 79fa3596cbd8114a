package store

import (
	"context"
	"errors"
	"time"

	"github.com/astecastudio/portfolio-api/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Users() Users
	Sessions() Sessions
	PortfolioItems() PortfolioItems
	ContactMessages() ContactMessages

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back; otherwise it
	// is committed. This is the recommended way to handle multi-step
	// operations that must be atomic (e.g., session rotation).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login and bootstrap.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateLastLogin stamps last_login after a successful authentication.
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error

	// UpdatePasswordHash sets the password_hash (argon2).
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error
}

type Sessions interface {
	// CreateSession inserts a new session row. Returns ErrAlreadyExists on
	// a token collision so callers can retry with a fresh token.
	CreateSession(ctx context.Context, s domain.Session) error

	// GetActiveSessionByToken returns the active session with the given
	// token, ErrNotFound otherwise. Expiry is NOT checked here; the
	// session service owns lazy-expiry semantics.
	GetActiveSessionByToken(ctx context.Context, token string) (domain.Session, error)

	// GetSessionByToken returns the session regardless of its active flag.
	// Sessions are never deleted, so this doubles as the audit read.
	GetSessionByToken(ctx context.Context, token string) (domain.Session, error)

	// DeactivateSession flips is_active off for a single session row.
	DeactivateSession(ctx context.Context, id string) error

	// DeactivateSessionByToken deactivates the active session matching
	// token and reports whether a row was flipped (false on repeat calls).
	DeactivateSessionByToken(ctx context.Context, token string) (bool, error)

	// DeactivateUserSessions deactivates every active session owned by
	// userID. Run inside the same transaction as the replacing insert to
	// keep "one active session per user" a real invariant.
	DeactivateUserSessions(ctx context.Context, userID string) error

	// DeactivateExpiredSessions flips every active-but-expired session and
	// returns how many rows changed. Housekeeping only; rows stay behind
	// for audit.
	DeactivateExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// PortfolioFilter narrows portfolio listings. Zero values mean "any".
type PortfolioFilter struct {
	Category        string
	ItemType        string
	IncludeInactive bool
}

type PortfolioItems interface {
	CreatePortfolioItem(ctx context.Context, it domain.PortfolioItem) error

	// GetPortfolioItemByID returns the item regardless of its active flag;
	// callers decide whether inactive items are visible.
	GetPortfolioItemByID(ctx context.Context, id string) (domain.PortfolioItem, error)

	// ListPortfolioItems returns items newest first.
	ListPortfolioItems(ctx context.Context, f PortfolioFilter) ([]domain.PortfolioItem, error)

	// UpdatePortfolioItem writes the full mutable row and bumps updated_at.
	UpdatePortfolioItem(ctx context.Context, it domain.PortfolioItem) error

	// DeactivatePortfolioItem soft-deletes an item.
	DeactivatePortfolioItem(ctx context.Context, id string, at time.Time) error

	// CountActivePortfolioItems returns per-type counts of active items.
	CountActivePortfolioItems(ctx context.Context) (domain.PortfolioStats, error)
}

type ContactMessages interface {
	CreateContactMessage(ctx context.Context, m domain.ContactMessage) error

	// ListContactMessages returns all messages newest first.
	ListContactMessages(ctx context.Context) ([]domain.ContactMessage, error)

	// MarkContactMessageRead sets is_read; ErrNotFound if no such message.
	MarkContactMessageRead(ctx context.Context, id string) error

	// CountContactMessages returns total and unread counts.
	CountContactMessages(ctx context.Context) (domain.ContactStats, error)
}
