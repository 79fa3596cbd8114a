package http

import (
	"net/http"

	"github.com/astecastudio/portfolio-api/internal/service"
	"github.com/astecastudio/portfolio-api/pkg/apisdk"
	"github.com/astecastudio/portfolio-api/pkg/httpx"
	"github.com/astecastudio/portfolio-api/pkg/slogx"
)

// StatsHandler serves the admin dashboard counters.
type StatsHandler struct {
	StatsService *service.StatsService
}

func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.StatsService.Dashboard(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("stats aggregation failed", "error", err)
		apisdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, apisdk.StatsResponse{
		Portfolio: apisdk.PortfolioStats{
			TotalItems: stats.Portfolio.TotalItems,
			Images:     stats.Portfolio.Images,
			Videos:     stats.Portfolio.Videos,
			Links:      stats.Portfolio.Links,
		},
		Contact: apisdk.ContactStats{
			TotalMessages:  stats.Contact.TotalMessages,
			UnreadMessages: stats.Contact.UnreadMessages,
		},
	})
}
