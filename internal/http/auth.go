package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/astecastudio/portfolio-api/internal/domain"
	"github.com/astecastudio/portfolio-api/internal/service"
	"github.com/astecastudio/portfolio-api/pkg/apisdk"
	"github.com/astecastudio/portfolio-api/pkg/httpx"
	"github.com/astecastudio/portfolio-api/pkg/slogx"
)

// AuthHandler serves login, logout and account endpoints.
type AuthHandler struct {
	SessionService  *service.SessionService
	SessionDuration time.Duration
	CookieSecure    bool
}

// HandleLogin authenticates a username/password pair and issues a fresh
// session. The token is returned in the body for API clients and set as an
// HttpOnly cookie for browsers; any previous session for the user is
// invalidated.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req apisdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apisdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Username == "" || req.Password == "" {
		apisdk.ErrInvalidRequest.WithDescription("username and password are required").WriteError(w)
		return
	}

	user, err := h.SessionService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			apisdk.ErrInvalidCredentials.WriteError(w)
			return
		}
		log.Error("authentication failed", "error", err)
		apisdk.ErrServerError.WriteError(w)
		return
	}

	sess, err := h.SessionService.CreateSession(ctx, user.ID)
	if err != nil {
		log.Error("session creation failed", "error", err, "user_id", user.ID)
		apisdk.ErrServerError.WriteError(w)
		return
	}

	h.setSessionCookie(w, sess.Token, sess.ExpiresAt)
	httpx.WriteJSON(w, http.StatusOK, apisdk.LoginResponse{
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
		User:      toUserInfo(user),
	})
}

// HandleLogout invalidates whatever token the request authenticated with
// and clears the cookie. Succeeds even when the token was already gone, so
// logout is idempotent from the client's point of view.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token := httpx.RequestToken(r)
	ok, err := h.SessionService.Logout(ctx, token)
	if err != nil {
		log.Error("logout failed", "error", err)
		apisdk.ErrServerError.WriteError(w)
		return
	}
	if !ok {
		log.Debug("logout for already inactive session")
	}

	h.clearSessionCookie(w)
	httpx.WriteJSON(w, http.StatusOK, apisdk.MessageResponse{Message: "logged out"})
}

// HandleMe returns the account behind the current session.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.PrincipalFromContext(r.Context())
	if !ok {
		apisdk.ErrAuthRequired.WriteError(w)
		return
	}

	// Re-read the full record; the principal only carries identity.
	user, err := h.SessionService.GetUser(r.Context(), p.UserID)
	if err != nil {
		slogx.FromContext(r.Context()).Error("load current user failed", "error", err)
		apisdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserInfo(user))
}

// HandleChangePassword swaps the caller's password after checking the
// current one. The active session stays valid.
func (h *AuthHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	p, ok := httpx.PrincipalFromContext(ctx)
	if !ok {
		apisdk.ErrAuthRequired.WriteError(w)
		return
	}

	var req apisdk.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apisdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		apisdk.ErrInvalidRequest.WithDescription("current_password and new_password are required").WriteError(w)
		return
	}
	if len(req.NewPassword) < 8 {
		apisdk.ErrValidation.WithDescription("new password must be at least 8 characters").WriteError(w)
		return
	}

	err := h.SessionService.ChangePassword(ctx, p.UserID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			apisdk.ErrWrongPassword.WriteError(w)
			return
		}
		log.Error("password change failed", "error", err, "user_id", p.UserID)
		apisdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, apisdk.MessageResponse{Message: "password changed"})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     httpx.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     httpx.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func toUserInfo(u domain.User) apisdk.UserInfo {
	return apisdk.UserInfo{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}
