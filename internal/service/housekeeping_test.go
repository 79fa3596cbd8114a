package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/astecastudio/portfolio-api/internal/domain"
	"github.com/astecastudio/portfolio-api/internal/service"
	"github.com/astecastudio/portfolio-api/pkg/idx"
)

func TestHousekeeperSweepsOnStart(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	u := createUser(t, st, "alice", "correct horse battery", true)

	stale := domain.Session{
		ID:        idx.New().String(),
		UserID:    u.ID,
		Token:     "stale",
		CreatedAt: time.Now().UTC().Add(-2 * time.Hour),
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
		IsActive:  true,
	}
	require.NoError(t, st.Sessions().CreateSession(ctx, stale))

	// Run performs an immediate sweep before settling into its ticker, so
	// a short-lived context is enough to observe it.
	runCtx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
	defer cancel()

	h := &service.Housekeeper{Store: st, Interval: time.Hour}
	h.Run(runCtx)

	after, err := st.Sessions().GetSessionByToken(ctx, "stale")
	require.NoError(t, err)
	require.False(t, after.IsActive)
}
