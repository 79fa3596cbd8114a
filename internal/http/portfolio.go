package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/astecastudio/portfolio-api/internal/domain"
	"github.com/astecastudio/portfolio-api/internal/service"
	"github.com/astecastudio/portfolio-api/internal/store"
	"github.com/astecastudio/portfolio-api/pkg/apisdk"
	"github.com/astecastudio/portfolio-api/pkg/httpx"
	"github.com/astecastudio/portfolio-api/pkg/slogx"
)

// PortfolioHandler serves the public catalogue and its admin CRUD.
type PortfolioHandler struct {
	PortfolioService *service.PortfolioService
}

// HandlePublicList lists active items, optionally narrowed by the
// category and item_type query parameters.
func (h *PortfolioHandler) HandlePublicList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

// HandleAdminList lists every item including deactivated ones.
func (h *PortfolioHandler) HandleAdminList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *PortfolioHandler) list(w http.ResponseWriter, r *http.Request, includeInactive bool) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	f := store.PortfolioFilter{
		Category:        r.URL.Query().Get("category"),
		ItemType:        r.URL.Query().Get("item_type"),
		IncludeInactive: includeInactive,
	}
	if f.ItemType != "" && !domain.ValidItemType(f.ItemType) {
		apisdk.ErrValidation.WithDescription("item_type must be image, video or link").WriteError(w)
		return
	}

	items, err := h.PortfolioService.List(ctx, f)
	if err != nil {
		log.Error("portfolio listing failed", "error", err)
		apisdk.ErrServerError.WriteError(w)
		return
	}

	out := make([]apisdk.PortfolioItem, 0, len(items))
	for _, it := range items {
		out = append(out, toPortfolioItem(it))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandlePublicGet returns a single active item.
func (h *PortfolioHandler) HandlePublicGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	it, err := h.PortfolioService.Get(ctx, r.PathValue("id"), false)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			apisdk.ErrNotFound.WriteError(w)
			return
		}
		slogx.FromContext(ctx).Error("portfolio fetch failed", "error", err)
		apisdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toPortfolioItem(it))
}

// HandleCreate adds a new catalogue entry owned by the calling admin.
func (h *PortfolioHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	p, _ := httpx.PrincipalFromContext(ctx)

	var req apisdk.PortfolioItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apisdk.ErrInvalidRequest.WriteError(w)
		return
	}

	it, err := h.PortfolioService.Create(ctx, p.UserID, toPortfolioInput(req))
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			apisdk.ErrValidation.WithDescription(err.Error()).WriteError(w)
			return
		}
		log.Error("portfolio create failed", "error", err)
		apisdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toPortfolioItem(it))
}

// HandleUpdate replaces the mutable fields of an item.
func (h *PortfolioHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req apisdk.PortfolioItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apisdk.ErrInvalidRequest.WriteError(w)
		return
	}

	it, err := h.PortfolioService.Update(ctx, r.PathValue("id"), toPortfolioInput(req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			apisdk.ErrValidation.WithDescription(err.Error()).WriteError(w)
		case errors.Is(err, store.ErrNotFound):
			apisdk.ErrNotFound.WriteError(w)
		default:
			log.Error("portfolio update failed", "error", err, "item_id", r.PathValue("id"))
			apisdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toPortfolioItem(it))
}

// HandleDelete deactivates an item. The row and its media survive so
// already published links keep resolving for admins.
func (h *PortfolioHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.PortfolioService.Delete(ctx, r.PathValue("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			apisdk.ErrNotFound.WriteError(w)
			return
		}
		log.Error("portfolio delete failed", "error", err, "item_id", r.PathValue("id"))
		apisdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, apisdk.MessageResponse{Message: "portfolio item deleted"})
}

func toPortfolioInput(req apisdk.PortfolioItemRequest) service.PortfolioInput {
	return service.PortfolioInput{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		ItemType:      req.ItemType,
		FilePath:      req.FilePath,
		URL:           req.URL,
		ThumbnailPath: req.ThumbnailPath,
		Tags:          req.Tags,
	}
}

func toPortfolioItem(it domain.PortfolioItem) apisdk.PortfolioItem {
	tags := it.Tags
	if tags == nil {
		tags = []string{}
	}
	return apisdk.PortfolioItem{
		ID:            it.ID,
		Title:         it.Title,
		Description:   it.Description,
		Category:      it.Category,
		ItemType:      it.ItemType,
		FilePath:      it.FilePath,
		URL:           it.URL,
		ThumbnailPath: it.ThumbnailPath,
		Tags:          tags,
		IsActive:      it.IsActive,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}
