package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/astecastudio/portfolio-api/internal/service"
)

func TestEnsureDefaultAdmin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	boot := service.AdminBootstrap{
		Username: "admin",
		Email:    "admin@example.com",
		Password: "admin123",
	}

	require.NoError(t, service.EnsureDefaultAdmin(ctx, st, boot))

	u, err := st.Users().GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	require.True(t, u.IsAdmin)
	require.True(t, u.IsActive)
	require.Equal(t, "admin@example.com", u.Email)

	svc := &service.SessionService{Store: st}
	_, err = svc.Authenticate(ctx, "admin", "admin123")
	require.NoError(t, err)
}

func TestEnsureDefaultAdminDoesNotClobberExistingAccount(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &service.SessionService{Store: st}

	boot := service.AdminBootstrap{
		Username: "admin",
		Email:    "admin@example.com",
		Password: "admin123",
	}
	require.NoError(t, service.EnsureDefaultAdmin(ctx, st, boot))

	// Admin rotates their password at runtime.
	u, err := st.Users().GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NoError(t, svc.ChangePassword(ctx, u.ID, "admin123", "rotated password"))

	// A restart must leave the rotated credential alone.
	require.NoError(t, service.EnsureDefaultAdmin(ctx, st, boot))

	_, err = svc.Authenticate(ctx, "admin", "rotated password")
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, "admin", "admin123")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}
