package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/astecastudio/portfolio-api/internal/store"
	"github.com/astecastudio/portfolio-api/pkg/slogx"
)

// DefaultHousekeepingInterval is how often expired sessions are swept when
// no interval is configured. Validation already deactivates stale sessions
// lazily; the sweep only mops up sessions that were never presented again.
const DefaultHousekeepingInterval = time.Hour

// Housekeeper periodically deactivates expired sessions in the background.
type Housekeeper struct {
	Store    store.Store
	Interval time.Duration
}

// Run sweeps on a ticker until ctx is cancelled. It performs one sweep
// immediately on start so restarts do not leave a stale backlog for a full
// interval.
func (h *Housekeeper) Run(ctx context.Context) {
	interval := h.Interval
	if interval <= 0 {
		interval = DefaultHousekeepingInterval
	}

	h.sweep(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.sweep(ctx)
		}
	}
}

func (h *Housekeeper) sweep(ctx context.Context) {
	l := slogx.FromContext(ctx)

	n, err := h.Store.Sessions().DeactivateExpiredSessions(ctx, time.Now().UTC())
	if err != nil {
		if ctx.Err() == nil {
			l.Error("session sweep failed", slog.Any("error", err))
		}
		return
	}
	if n > 0 {
		l.Info("deactivated expired sessions", slog.Int64("count", n))
	}
}
