package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/astecastudio/portfolio-api/internal/domain"
	"github.com/astecastudio/portfolio-api/internal/service"
	"github.com/astecastudio/portfolio-api/internal/store"
)

func TestPortfolioCreateValidation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &service.PortfolioService{Store: st}

	t.Run("missing title", func(t *testing.T) {
		_, err := svc.Create(ctx, "", service.PortfolioInput{
			Category: "design", ItemType: domain.ItemTypeLink, URL: "https://example.com",
		})
		require.ErrorIs(t, err, service.ErrValidation)
	})

	t.Run("bad item type", func(t *testing.T) {
		_, err := svc.Create(ctx, "", service.PortfolioInput{
			Title: "x", Category: "design", ItemType: "gif",
		})
		require.ErrorIs(t, err, service.ErrValidation)
	})

	t.Run("link without url", func(t *testing.T) {
		_, err := svc.Create(ctx, "", service.PortfolioInput{
			Title: "x", Category: "links", ItemType: domain.ItemTypeLink,
		})
		require.ErrorIs(t, err, service.ErrValidation)
	})

	t.Run("image without file", func(t *testing.T) {
		_, err := svc.Create(ctx, "", service.PortfolioInput{
			Title: "x", Category: "design", ItemType: domain.ItemTypeImage,
		})
		require.ErrorIs(t, err, service.ErrValidation)
	})
}

func TestPortfolioLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &service.PortfolioService{Store: st}

	admin := createUser(t, st, "admin", "correct horse battery", true)

	created, err := svc.Create(ctx, admin.ID, service.PortfolioInput{
		Title:       "Brand refresh",
		Description: "Logo and palette work",
		Category:    "design",
		ItemType:    domain.ItemTypeImage,
		FilePath:    "/uploads/abc_logo.png",
		Tags:        []string{"branding", "logo"},
	})
	require.NoError(t, err)
	require.True(t, created.IsActive)
	require.Equal(t, admin.ID, created.CreatedBy)

	t.Run("update replaces fields", func(t *testing.T) {
		updated, err := svc.Update(ctx, created.ID, service.PortfolioInput{
			Title:       "Brand refresh v2",
			Description: "Final round",
			Category:    "design",
			ItemType:    domain.ItemTypeImage,
			FilePath:    "/uploads/abc_logo_v2.png",
			Tags:        []string{"branding"},
		})
		require.NoError(t, err)
		require.Equal(t, "Brand refresh v2", updated.Title)
		require.Equal(t, []string{"branding"}, updated.Tags)
		require.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
	})

	t.Run("delete hides from public view only", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, created.ID))

		_, err := svc.Get(ctx, created.ID, false)
		require.ErrorIs(t, err, store.ErrNotFound)

		it, err := svc.Get(ctx, created.ID, true)
		require.NoError(t, err)
		require.False(t, it.IsActive)

		public, err := svc.List(ctx, store.PortfolioFilter{})
		require.NoError(t, err)
		require.Empty(t, public)

		all, err := svc.List(ctx, store.PortfolioFilter{IncludeInactive: true})
		require.NoError(t, err)
		require.Len(t, all, 1)
	})

	t.Run("unknown id", func(t *testing.T) {
		err := svc.Delete(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestPortfolioListFilters(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &service.PortfolioService{Store: st}

	mk := func(title, category, itemType string) {
		in := service.PortfolioInput{Title: title, Category: category, ItemType: itemType}
		if itemType == domain.ItemTypeLink {
			in.URL = "https://example.com/" + title
		} else {
			in.FilePath = "/uploads/" + title
		}
		_, err := svc.Create(ctx, "", in)
		require.NoError(t, err)
	}

	mk("a", "design", domain.ItemTypeImage)
	mk("b", "design", domain.ItemTypeImage)
	mk("c", "video", domain.ItemTypeVideo)
	mk("d", "links", domain.ItemTypeLink)

	byCategory, err := svc.List(ctx, store.PortfolioFilter{Category: "design"})
	require.NoError(t, err)
	require.Len(t, byCategory, 2)

	byType, err := svc.List(ctx, store.PortfolioFilter{ItemType: domain.ItemTypeVideo})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	require.Equal(t, "c", byType[0].Title)
}

func TestStatsDashboard(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	portfolio := &service.PortfolioService{Store: st}
	contact := &service.ContactService{Store: st}
	stats := &service.StatsService{Store: st}

	_, err := portfolio.Create(ctx, "", service.PortfolioInput{
		Title: "a", Category: "design", ItemType: domain.ItemTypeImage, FilePath: "/uploads/a.png",
	})
	require.NoError(t, err)
	deleted, err := portfolio.Create(ctx, "", service.PortfolioInput{
		Title: "b", Category: "links", ItemType: domain.ItemTypeLink, URL: "https://example.com",
	})
	require.NoError(t, err)
	require.NoError(t, portfolio.Delete(ctx, deleted.ID))

	msg, err := contact.Submit(ctx, service.ContactInput{
		Name: "Dana", Email: "dana@example.com", Subject: "Hi", Message: "Quote please",
	})
	require.NoError(t, err)
	_, err = contact.Submit(ctx, service.ContactInput{
		Name: "Eve", Email: "eve@example.com", Subject: "Hello", Message: "Also a quote",
	})
	require.NoError(t, err)
	require.NoError(t, contact.MarkRead(ctx, msg.ID))

	got, err := stats.Dashboard(ctx)
	require.NoError(t, err)

	// Deactivated items fall out of the counters.
	require.Equal(t, 1, got.Portfolio.TotalItems)
	require.Equal(t, 1, got.Portfolio.Images)
	require.Equal(t, 0, got.Portfolio.Links)
	require.Equal(t, 2, got.Contact.TotalMessages)
	require.Equal(t, 1, got.Contact.UnreadMessages)
}
