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

// AdminBootstrap describes the administrator account created on first
// start when the users table holds no account with that username.
type AdminBootstrap struct {
	Username string
	Email    string
	Password string
}

// DefaultAdminPassword is the out-of-the-box credential. Deployments are
// expected to override it via configuration; startup logs a warning when
// it is still in use.
const DefaultAdminPassword = "admin123"

// EnsureDefaultAdmin creates the bootstrap administrator if it does not
// exist yet. The check is by username, so a changed password or email in
// the configuration never clobbers an account that was edited at runtime.
func EnsureDefaultAdmin(ctx context.Context, st store.Store, boot AdminBootstrap) error {
	l := slogx.FromContext(ctx)

	_, err := st.Users().GetUserByUsername(ctx, boot.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("lookup bootstrap admin: %w", err)
	}

	hash, err := cryptox.HashPassword(boot.Password)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}

	u := domain.User{
		ID:           idx.New().String(),
		Username:     boot.Username,
		Email:        boot.Email,
		PasswordHash: hash,
		IsAdmin:      true,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := st.Users().CreateUser(ctx, u); err != nil {
		// Two instances racing the same empty database; the loser is fine.
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil
		}
		return fmt.Errorf("create bootstrap admin: %w", err)
	}

	l.Info("created bootstrap admin account", slog.String("username", boot.Username))
	if boot.Password == DefaultAdminPassword {
		l.Warn("bootstrap admin uses the default password, change it before exposing this service")
	}
	return nil
}
