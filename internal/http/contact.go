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

// ContactHandler serves the public contact form and the admin inbox.
type ContactHandler struct {
	ContactService *service.ContactService
}

// HandleSubmit accepts a public contact-form submission.
func (h *ContactHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req apisdk.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apisdk.ErrInvalidRequest.WriteError(w)
		return
	}

	_, err := h.ContactService.Submit(ctx, service.ContactInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Subject:     req.Subject,
		Message:     req.Message,
		ProjectType: req.ProjectType,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			apisdk.ErrValidation.WithDescription(err.Error()).WriteError(w)
			return
		}
		log.Error("contact submission failed", "error", err)
		apisdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, apisdk.MessageResponse{Message: "message received"})
}

// HandleAdminList returns the full inbox, newest first.
func (h *ContactHandler) HandleAdminList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	msgs, err := h.ContactService.List(ctx)
	if err != nil {
		log.Error("contact listing failed", "error", err)
		apisdk.ErrServerError.WriteError(w)
		return
	}

	out := make([]apisdk.ContactMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toContactMessage(m))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleMarkRead flags a message as handled.
func (h *ContactHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.ContactService.MarkRead(ctx, r.PathValue("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			apisdk.ErrNotFound.WriteError(w)
			return
		}
		log.Error("mark read failed", "error", err, "message_id", r.PathValue("id"))
		apisdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, apisdk.MessageResponse{Message: "message marked as read"})
}

func toContactMessage(m domain.ContactMessage) apisdk.ContactMessage {
	return apisdk.ContactMessage{
		ID:          m.ID,
		Name:        m.Name,
		Email:       m.Email,
		Phone:       m.Phone,
		Subject:     m.Subject,
		Message:     m.Message,
		ProjectType: m.ProjectType,
		IsRead:      m.IsRead,
		CreatedAt:   m.CreatedAt,
	}
}
