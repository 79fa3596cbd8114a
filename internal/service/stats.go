package service

import (
	"context"
	"fmt"
	"time"

	"github.com/astecastudio/portfolio-api/internal/domain"
	"github.com/astecastudio/portfolio-api/internal/store"
)

// StatsService aggregates the counters shown on the admin dashboard.
type StatsService struct {
	Store        store.Store
	StoreTimeout time.Duration
}

// Dashboard returns portfolio and contact counters in one shot.
func (s *StatsService) Dashboard(ctx context.Context) (domain.Stats, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	portfolio, err := s.Store.PortfolioItems().CountActivePortfolioItems(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("count portfolio items: %w", err)
	}
	contact, err := s.Store.ContactMessages().CountContactMessages(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("count contact messages: %w", err)
	}

	return domain.Stats{Portfolio: portfolio, Contact: contact}, nil
}

func (s *StatsService) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.StoreTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.StoreTimeout)
}
