package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/astecastudio/portfolio-api/pkg/slogx"
)

// SessionCookieName is the fallback cookie browser clients authenticate
// with when they cannot set an Authorization header.
const SessionCookieName = "session_token"

// TokenVerifier resolves an opaque session token to the caller it belongs
// to. A nil Principal with a nil error means the token is absent, unknown,
// expired or otherwise invalid; an error means the verifier itself failed.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*Principal, error)
}

// SessionAuth authenticates requests via an opaque session token, read
// from the Authorization Bearer header first and the session_token cookie
// second. Invalid or missing tokens get a 401; a failing verifier gets a
// 500 so callers can tell "log in again" apart from "server trouble".
func SessionAuth(v TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			token := RequestToken(r)
			if token == "" {
				writeBearerError(w, "missing session token")
				return
			}

			p, err := v.VerifyToken(ctx, token)
			if err != nil {
				log.Error("session verification failed", "error", err)
				WriteError(w, http.StatusInternalServerError, "internal_error", "could not verify session")
				return
			}
			if p == nil {
				writeBearerError(w, "invalid or expired session token")
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithPrincipal(ctx, *p)))
		})
	}
}

// RequireAdmin rejects authenticated non-admin callers with a 403. It must
// sit inside SessionAuth; a request that never carried a principal gets a
// 401 rather than leaking which routes exist behind the guard.
func RequireAdmin() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				writeBearerError(w, "missing session token")
				return
			}
			if !p.IsAdmin {
				WriteError(w, http.StatusForbidden, "admin_required", "administrator privileges required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestToken extracts the session token from a request, preferring the
// Authorization header over the cookie so API clients can override a stale
// browser cookie. Returns "" when neither is present.
func RequestToken(r *http.Request) string {
	if authz := r.Header.Get("Authorization"); authz != "" {
		if strings.HasPrefix(authz, "Bearer ") {
			return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
		}
		return ""
	}
	if c, err := r.Cookie(SessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

// RFC 6750-style error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "authentication_required", desc)
}
