package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type verifierFunc func(ctx context.Context, token string) (*Principal, error)

func (f verifierFunc) VerifyToken(ctx context.Context, token string) (*Principal, error) {
	return f(ctx, token)
}

func okHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestTokenPrefersHeaderOverCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer header-token")
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "cookie-token"})

	require.Equal(t, "header-token", RequestToken(r))
}

func TestRequestTokenFallsBackToCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "cookie-token"})

	require.Equal(t, "cookie-token", RequestToken(r))
}

func TestRequestTokenMalformedHeaderFailsClosed(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "cookie-token"})

	// An explicit Authorization header wins even when malformed; the
	// cookie must not silently rescue a broken API client.
	require.Empty(t, RequestToken(r))
}

func TestSessionAuthMissingToken(t *testing.T) {
	v := verifierFunc(func(ctx context.Context, token string) (*Principal, error) {
		t.Fatal("verifier must not be called without a token")
		return nil, nil
	})

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	SessionAuth(v)(okHandler(t)).ServeHTTP(rec, r)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
}

func TestSessionAuthInvalidToken(t *testing.T) {
	v := verifierFunc(func(ctx context.Context, token string) (*Principal, error) {
		return nil, nil
	})

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer nope")
	SessionAuth(v)(okHandler(t)).ServeHTTP(rec, r)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAuthVerifierFailure(t *testing.T) {
	v := verifierFunc(func(ctx context.Context, token string) (*Principal, error) {
		return nil, errors.New("store down")
	})

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer whatever")
	SessionAuth(v)(okHandler(t)).ServeHTTP(rec, r)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSessionAuthInjectsPrincipal(t *testing.T) {
	v := verifierFunc(func(ctx context.Context, token string) (*Principal, error) {
		require.Equal(t, "tok", token)
		return &Principal{UserID: "u1", Username: "alice", IsAdmin: true}, nil
	})

	var got Principal
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		require.True(t, ok)
		got = p
	})

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "tok"})
	SessionAuth(v)(inner).ServeHTTP(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "alice", got.Username)
	require.True(t, got.IsAdmin)
}

func TestRequireAdmin(t *testing.T) {
	handler := RequireAdmin()(okHandler(t))

	t.Run("no principal", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("non-admin", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := contextWithPrincipal(r.Context(), Principal{UserID: "u2", Username: "bob"})
		handler.ServeHTTP(rec, r.WithContext(ctx))
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := contextWithPrincipal(r.Context(), Principal{UserID: "u1", IsAdmin: true})
		handler.ServeHTTP(rec, r.WithContext(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCORSPreflightAllowedOrigin(t *testing.T) {
	handler := Chain(okHandler(t), CORS([]string{"https://asteca2.com"}))

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodOptions, "/api/portfolio", nil)
	r.Header.Set("Origin", "https://asteca2.com")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	handler.ServeHTTP(rec, r)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://asteca2.com", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSUnlistedOriginGetsNoHeaders(t *testing.T) {
	handler := Chain(okHandler(t), CORS([]string{"https://asteca2.com"}))

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
	r.Header.Set("Origin", "https://evil.example")
	handler.ServeHTTP(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
