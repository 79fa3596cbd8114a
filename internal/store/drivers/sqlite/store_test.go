package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/astecastudio/portfolio-api/internal/domain"
	"github.com/astecastudio/portfolio-api/internal/store"
	"github.com/astecastudio/portfolio-api/pkg/idx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore("file:" + filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
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

func seedSession(t *testing.T, st store.Store, userID, token string, expiresAt time.Time) domain.Session {
	t.Helper()

	s := domain.Session{
		ID:        idx.New().String(),
		UserID:    userID,
		Token:     token,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: expiresAt,
		IsActive:  true,
	}
	require.NoError(t, st.Sessions().CreateSession(context.Background(), s))
	return s
}

func TestUsersUniqueConstraints(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	u := seedUser(t, st, "alice")

	dup := u
	dup.ID = idx.New().String()
	require.ErrorIs(t, st.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)

	_, err := st.Users().GetUserByUsername(ctx, "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, st.Users().UpdateLastLogin(ctx, "missing", time.Now()), store.ErrNotFound)
}

func TestSessionsTokenCollision(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	u := seedUser(t, st, "alice")

	seedSession(t, st, u.ID, "token-1", time.Now().Add(time.Hour))

	clash := domain.Session{
		ID:        idx.New().String(),
		UserID:    u.ID,
		Token:     "token-1",
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().Add(time.Hour),
		IsActive:  true,
	}
	require.ErrorIs(t, st.Sessions().CreateSession(ctx, clash), store.ErrAlreadyExists)
}

func TestDeactivateExpiredSessions(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	u := seedUser(t, st, "alice")

	now := time.Now().UTC()
	seedSession(t, st, u.ID, "live", now.Add(time.Hour))
	seedSession(t, st, u.ID, "stale-1", now.Add(-time.Minute))
	seedSession(t, st, u.ID, "stale-2", now.Add(-time.Hour))

	n, err := st.Sessions().DeactivateExpiredSessions(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	// Sweep is idempotent.
	n, err = st.Sessions().DeactivateExpiredSessions(ctx, now)
	require.NoError(t, err)
	require.Zero(t, n)

	_, err = st.Sessions().GetActiveSessionByToken(ctx, "live")
	require.NoError(t, err)
	_, err = st.Sessions().GetActiveSessionByToken(ctx, "stale-1")
	require.ErrorIs(t, err, store.ErrNotFound)

	// Audit rows survive the sweep.
	s, err := st.Sessions().GetSessionByToken(ctx, "stale-1")
	require.NoError(t, err)
	require.False(t, s.IsActive)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	u := seedUser(t, st, "alice")
	seedSession(t, st, u.ID, "keep-me", time.Now().Add(time.Hour))

	sentinel := errors.New("boom")
	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Sessions().DeactivateUserSessions(ctx, u.ID); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	// The deactivation inside the failed transaction must not stick.
	_, err = st.Sessions().GetActiveSessionByToken(ctx, "keep-me")
	require.NoError(t, err)
}

func TestWithTxCommits(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	u := seedUser(t, st, "alice")
	seedSession(t, st, u.ID, "old", time.Now().Add(time.Hour))

	replacement := domain.Session{
		ID:        idx.New().String(),
		UserID:    u.ID,
		Token:     "new",
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().Add(time.Hour),
		IsActive:  true,
	}
	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Sessions().DeactivateUserSessions(ctx, u.ID); err != nil {
			return err
		}
		return tx.Sessions().CreateSession(ctx, replacement)
	})
	require.NoError(t, err)

	_, err = st.Sessions().GetActiveSessionByToken(ctx, "old")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Sessions().GetActiveSessionByToken(ctx, "new")
	require.NoError(t, err)
}

func TestPortfolioTagsRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	it := domain.PortfolioItem{
		ID:        idx.New().String(),
		Title:     "Reel",
		Category:  "video",
		ItemType:  domain.ItemTypeVideo,
		FilePath:  "/uploads/reel.mp4",
		Tags:      []string{"showreel", "2026"},
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, st.PortfolioItems().CreatePortfolioItem(ctx, it))

	got, err := st.PortfolioItems().GetPortfolioItemByID(ctx, it.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"showreel", "2026"}, got.Tags)
	require.Empty(t, got.URL)
}
