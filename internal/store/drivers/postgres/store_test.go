package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/astecastudio/portfolio-api/internal/domain"
	"github.com/astecastudio/portfolio-api/internal/store"
	"github.com/astecastudio/portfolio-api/pkg/idx"
)

/*
 * These tests spin up a throwaway postgres container per test run. They are
 * skipped automatically when no Docker daemon is reachable, so the sqlite
 * tests remain the fast default path.
 */

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "portfolio",
			"POSTGRES_PASSWORD": "portfolio",
			"POSTGRES_DB":       "portfolio_test",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("docker unavailable, skipping postgres driver tests: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://portfolio:portfolio@%s:%s/portfolio_test?sslmode=disable",
		host, port.Port())

	// The port can be up before postgres accepts connections; retry briefly.
	var st *Store
	deadline := time.Now().Add(30 * time.Second)
	for {
		st, err = NewStore(dsn)
		if err == nil {
			if err = st.Ping(ctx); err == nil {
				break
			}
			_ = st.Close()
		}
		if time.Now().After(deadline) {
			t.Fatalf("postgres never became ready: %v", err)
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedUser(t *testing.T, st *Store, username string) domain.User {
	t.Helper()

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func TestPostgresSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	u := seedUser(t, st, "alice")

	sess := domain.Session{
		ID:        idx.New().String(),
		UserID:    u.ID,
		Token:     "token-1",
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
		IsActive:  true,
	}
	require.NoError(t, st.Sessions().CreateSession(ctx, sess))

	// Unique token constraint maps to ErrAlreadyExists.
	clash := sess
	clash.ID = idx.New().String()
	require.ErrorIs(t, st.Sessions().CreateSession(ctx, clash), store.ErrAlreadyExists)

	got, err := st.Sessions().GetActiveSessionByToken(ctx, "token-1")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.UserID)

	ok, err := st.Sessions().DeactivateSessionByToken(ctx, "token-1")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = st.Sessions().DeactivateSessionByToken(ctx, "token-1")
	require.NoError(t, err)
	require.False(t, ok)

	_, err = st.Sessions().GetActiveSessionByToken(ctx, "token-1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestPostgresWithTxSessionRotation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	u := seedUser(t, st, "alice")

	mkSession := func(token string) domain.Session {
		return domain.Session{
			ID:        idx.New().String(),
			UserID:    u.ID,
			Token:     token,
			CreatedAt: time.Now().UTC(),
			ExpiresAt: time.Now().UTC().Add(time.Hour),
			IsActive:  true,
		}
	}
	require.NoError(t, st.Sessions().CreateSession(ctx, mkSession("old")))

	sentinel := errors.New("boom")
	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Sessions().DeactivateUserSessions(ctx, u.ID); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	// Rollback kept the old session active.
	_, err = st.Sessions().GetActiveSessionByToken(ctx, "old")
	require.NoError(t, err)

	err = st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Sessions().DeactivateUserSessions(ctx, u.ID); err != nil {
			return err
		}
		return tx.Sessions().CreateSession(ctx, mkSession("new"))
	})
	require.NoError(t, err)

	_, err = st.Sessions().GetActiveSessionByToken(ctx, "old")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Sessions().GetActiveSessionByToken(ctx, "new")
	require.NoError(t, err)
}

func TestPostgresPortfolioCounts(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	mk := func(itemType string, active bool) {
		it := domain.PortfolioItem{
			ID:        idx.New().String(),
			Title:     "item",
			Category:  "misc",
			ItemType:  itemType,
			FilePath:  "/uploads/x",
			URL:       "https://example.com",
			IsActive:  active,
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		}
		require.NoError(t, st.PortfolioItems().CreatePortfolioItem(ctx, it))
	}

	mk(domain.ItemTypeImage, true)
	mk(domain.ItemTypeImage, true)
	mk(domain.ItemTypeVideo, true)
	mk(domain.ItemTypeLink, false)

	stats, err := st.PortfolioItems().CountActivePortfolioItems(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, stats.TotalItems)
	require.Equal(t, 2, stats.Images)
	require.Equal(t, 1, stats.Videos)
	require.Equal(t, 0, stats.Links)
}
