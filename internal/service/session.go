package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/astecastudio/portfolio-api/internal/domain"
	"github.com/astecastudio/portfolio-api/internal/store"
	"github.com/astecastudio/portfolio-api/pkg/cryptox"
	"github.com/astecastudio/portfolio-api/pkg/idx"
	"github.com/astecastudio/portfolio-api/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrWrongPassword      = errors.New("wrong_password")
)

const (
	// DefaultSessionDuration applies when no duration is configured.
	DefaultSessionDuration = 24 * time.Hour

	// tokenCreateRetries bounds how often session creation retries after a
	// token collision. With 256 bits of entropy a single collision is
	// already astronomically unlikely.
	tokenCreateRetries = 3
)

// SessionService issues, validates and invalidates opaque session tokens.
// Tokens carry no claims; every validation is a store lookup. The service
// enforces at most one active session per user.
type SessionService struct {
	Store           store.Store
	SessionDuration time.Duration

	// StoreTimeout bounds every store round-trip. Zero disables the
	// deadline and inherits whatever the caller's context carries.
	StoreTimeout time.Duration
}

// Authenticate verifies a username/password pair against the credential
// store. It returns ErrInvalidCredentials for unknown users, disabled users
// and hash mismatches alike, and stamps last_login on success.
func (s *SessionService) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}

	if !u.IsActive {
		l.Info("login attempt for disabled user", slog.String("username", username))
		return domain.User{}, ErrInvalidCredentials
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		l.Info("password verification failed", slog.String("username", username))
		return domain.User{}, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.Store.Users().UpdateLastLogin(ctx, u.ID, now); err != nil {
		return domain.User{}, fmt.Errorf("update last_login: %w", err)
	}
	u.LastLogin = &now

	return u, nil
}

// CreateSession mints a new opaque token for userID and persists it.
// Deactivating the user's previous sessions and inserting the new one
// happen in a single transaction so "one active session per user" holds
// even under concurrent logins. A token collision is retried with fresh
// randomness.
func (s *SessionService) CreateSession(ctx context.Context, userID string) (domain.Session, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	l := slogx.FromContext(ctx)

	now := time.Now().UTC()
	expiresAt := now.Add(s.duration())

	var lastErr error
	for range tokenCreateRetries {
		token, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return domain.Session{}, fmt.Errorf("generate session token: %w", err)
		}

		sess := domain.Session{
			ID:        idx.New().String(),
			UserID:    userID,
			Token:     token,
			CreatedAt: now,
			ExpiresAt: expiresAt,
			IsActive:  true,
		}

		err = s.Store.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Sessions().DeactivateUserSessions(ctx, userID); err != nil {
				return err
			}
			return tx.Sessions().CreateSession(ctx, sess)
		})
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, store.ErrAlreadyExists) {
			return domain.Session{}, fmt.Errorf("persist session: %w", err)
		}

		l.Warn("session token collision, retrying", slog.String("user_id", userID))
		lastErr = err
	}

	return domain.Session{}, fmt.Errorf("persist session: %w", lastErr)
}

// ValidateSession resolves an opaque token to its owning user. It returns
// (nil, nil) for missing, unknown, expired or disabled-owner tokens; an
// error is only returned when the store itself fails. An expired session
// is deactivated on discovery (lazy expiry), so the first stale use pays
// one extra write and later uses behave as "not found".
func (s *SessionService) ValidateSession(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, nil
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	sess, err := s.Store.Sessions().GetActiveSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup session: %w", err)
	}

	if sess.Expired(time.Now().UTC()) {
		if err := s.Store.Sessions().DeactivateSession(ctx, sess.ID); err != nil {
			return nil, fmt.Errorf("deactivate expired session: %w", err)
		}
		return nil, nil
	}

	u, err := s.Store.Users().GetUserByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve session owner: %w", err)
	}
	if !u.IsActive {
		return nil, nil
	}

	return &u, nil
}

// GetUser returns a user by id.
func (s *SessionService) GetUser(ctx context.Context, userID string) (domain.User, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	return s.Store.Users().GetUserByID(ctx, userID)
}

// Logout deactivates the active session matching token and reports whether
// one was found. Repeated calls return false; the rows stay behind for audit.
func (s *SessionService) Logout(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	ok, err := s.Store.Sessions().DeactivateSessionByToken(ctx, token)
	if err != nil {
		return false, fmt.Errorf("deactivate session: %w", err)
	}
	return ok, nil
}

// ChangePassword swaps a user's password after verifying the current one.
func (s *SessionService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}

	if err := cryptox.VerifyPassword(currentPassword, u.PasswordHash); err != nil {
		return ErrWrongPassword
	}

	newHash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.Store.Users().UpdatePasswordHash(ctx, u.ID, newHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *SessionService) duration() time.Duration {
	if s.SessionDuration <= 0 {
		return DefaultSessionDuration
	}
	return s.SessionDuration
}

func (s *SessionService) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.StoreTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.StoreTimeout)
}
