package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/astecastudio/portfolio-api/internal/media"
	"github.com/astecastudio/portfolio-api/internal/service"
	"github.com/astecastudio/portfolio-api/internal/store"
	"github.com/astecastudio/portfolio-api/pkg/httpx"
	"github.com/astecastudio/portfolio-api/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	SessionService   *service.SessionService
	PortfolioService *service.PortfolioService
	ContactService   *service.ContactService
	StatsService     *service.StatsService

	Media *media.Storage

	// SessionDuration drives the session cookie's Max-Age so browser and
	// server expire together.
	SessionDuration time.Duration

	// CookieSecure marks the session cookie Secure. Off for local dev
	// over plain http, on everywhere else.
	CookieSecure bool
}

func NewRouter(
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	corsOrigins []string,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(corsOrigins),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerPortfolio()
	r.registerContact()
	r.registerAdmin()
	r.registerSystem()

	if r.Media != nil {
		fs := http.FileServer(http.Dir(r.Media.Dir()))
		r.Mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", fs))
	}
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		SessionService:  r.SessionService,
		SessionDuration: r.SessionDuration,
		CookieSecure:    r.CookieSecure,
	}

	authn := httpx.SessionAuth(r.verifier())

	r.Mux.Handle("POST /api/auth/login", http.HandlerFunc(h.HandleLogin))

	// Logout takes the raw token itself rather than a principal; the
	// guard still keeps unauthenticated probes from reaching it.
	r.Mux.Handle("POST /api/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout), authn))
	r.Mux.Handle("GET /api/auth/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe), authn))
	r.Mux.Handle("POST /api/auth/change-password",
		httpx.Chain(http.HandlerFunc(h.HandleChangePassword), authn))
}

func (r *Router) registerPortfolio() {
	h := &PortfolioHandler{PortfolioService: r.PortfolioService}

	r.Mux.Handle("GET /api/portfolio", http.HandlerFunc(h.HandlePublicList))
	r.Mux.Handle("GET /api/portfolio/{id}", http.HandlerFunc(h.HandlePublicGet))
}

func (r *Router) registerContact() {
	h := &ContactHandler{ContactService: r.ContactService}

	r.Mux.Handle("POST /api/contact", http.HandlerFunc(h.HandleSubmit))
}

func (r *Router) registerAdmin() {
	portfolio := &PortfolioHandler{PortfolioService: r.PortfolioService}
	contact := &ContactHandler{ContactService: r.ContactService}
	upload := &UploadHandler{Media: r.Media}
	stats := &StatsHandler{StatsService: r.StatsService}

	admin := func(h http.HandlerFunc) http.Handler {
		return httpx.Chain(h,
			httpx.SessionAuth(r.verifier()),
			httpx.RequireAdmin(),
		)
	}

	r.Mux.Handle("GET /api/admin/portfolio", admin(portfolio.HandleAdminList))
	r.Mux.Handle("POST /api/admin/portfolio", admin(portfolio.HandleCreate))
	r.Mux.Handle("PUT /api/admin/portfolio/{id}", admin(portfolio.HandleUpdate))
	r.Mux.Handle("DELETE /api/admin/portfolio/{id}", admin(portfolio.HandleDelete))

	r.Mux.Handle("POST /api/admin/upload", admin(upload.HandleUpload))

	r.Mux.Handle("GET /api/admin/contact", admin(contact.HandleAdminList))
	r.Mux.Handle("PUT /api/admin/contact/{id}/read", admin(contact.HandleMarkRead))

	r.Mux.Handle("GET /api/admin/stats", admin(stats.HandleStats))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}

func (r *Router) verifier() httpx.TokenVerifier {
	return &sessionVerifier{sessions: r.SessionService}
}
