package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/astecastudio/portfolio-api/internal/domain"
	"github.com/astecastudio/portfolio-api/internal/store"
	"github.com/astecastudio/portfolio-api/pkg/idx"
)

// ErrValidation wraps all input validation failures so HTTP handlers can
// map them to a 400 with errors.Is.
var ErrValidation = errors.New("validation")

// PortfolioInput carries the mutable fields of a portfolio item.
type PortfolioInput struct {
	Title         string
	Description   string
	Category      string
	ItemType      string
	FilePath      string
	URL           string
	ThumbnailPath string
	Tags          []string
}

func (in PortfolioInput) validate() error {
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.Category == "" {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	if !domain.ValidItemType(in.ItemType) {
		return fmt.Errorf("%w: item_type must be image, video or link", ErrValidation)
	}
	if in.ItemType == domain.ItemTypeLink && in.URL == "" {
		return fmt.Errorf("%w: url is required for link items", ErrValidation)
	}
	if in.ItemType != domain.ItemTypeLink && in.FilePath == "" {
		return fmt.Errorf("%w: file_path is required for media items", ErrValidation)
	}
	return nil
}

// PortfolioService manages the public portfolio catalogue. Deletion is a
// soft-deactivate, so public listings hide items instead of breaking links.
type PortfolioService struct {
	Store        store.Store
	StoreTimeout time.Duration
}

// Create validates and persists a new item owned by createdBy.
func (s *PortfolioService) Create(ctx context.Context, createdBy string, in PortfolioInput) (domain.PortfolioItem, error) {
	if err := in.validate(); err != nil {
		return domain.PortfolioItem{}, err
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	now := time.Now().UTC()
	it := domain.PortfolioItem{
		ID:            idx.New().String(),
		Title:         in.Title,
		Description:   in.Description,
		Category:      in.Category,
		ItemType:      in.ItemType,
		FilePath:      in.FilePath,
		URL:           in.URL,
		ThumbnailPath: in.ThumbnailPath,
		Tags:          in.Tags,
		CreatedBy:     createdBy,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Store.PortfolioItems().CreatePortfolioItem(ctx, it); err != nil {
		return domain.PortfolioItem{}, fmt.Errorf("create portfolio item: %w", err)
	}
	return it, nil
}

// Get returns a single item. Inactive items are only visible when
// includeInactive is set (admin views).
func (s *PortfolioService) Get(ctx context.Context, id string, includeInactive bool) (domain.PortfolioItem, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	it, err := s.Store.PortfolioItems().GetPortfolioItemByID(ctx, id)
	if err != nil {
		return domain.PortfolioItem{}, err
	}
	if !it.IsActive && !includeInactive {
		return domain.PortfolioItem{}, store.ErrNotFound
	}
	return it, nil
}

// List returns items newest first, narrowed by the filter.
func (s *PortfolioService) List(ctx context.Context, f store.PortfolioFilter) ([]domain.PortfolioItem, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	items, err := s.Store.PortfolioItems().ListPortfolioItems(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list portfolio items: %w", err)
	}
	return items, nil
}

// Update replaces the mutable fields of an existing item.
func (s *PortfolioService) Update(ctx context.Context, id string, in PortfolioInput) (domain.PortfolioItem, error) {
	if err := in.validate(); err != nil {
		return domain.PortfolioItem{}, err
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	it, err := s.Store.PortfolioItems().GetPortfolioItemByID(ctx, id)
	if err != nil {
		return domain.PortfolioItem{}, err
	}

	it.Title = in.Title
	it.Description = in.Description
	it.Category = in.Category
	it.ItemType = in.ItemType
	it.FilePath = in.FilePath
	it.URL = in.URL
	it.ThumbnailPath = in.ThumbnailPath
	it.Tags = in.Tags
	it.UpdatedAt = time.Now().UTC()

	if err := s.Store.PortfolioItems().UpdatePortfolioItem(ctx, it); err != nil {
		return domain.PortfolioItem{}, fmt.Errorf("update portfolio item: %w", err)
	}
	return it, nil
}

// Delete soft-deactivates an item so its row and uploaded media survive.
func (s *PortfolioService) Delete(ctx context.Context, id string) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	return s.Store.PortfolioItems().DeactivatePortfolioItem(ctx, id, time.Now().UTC())
}

func (s *PortfolioService) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.StoreTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.StoreTimeout)
}
