package http

import (
	"context"

	"github.com/astecastudio/portfolio-api/internal/service"
	"github.com/astecastudio/portfolio-api/pkg/httpx"
)

// sessionVerifier adapts the session service to the guard middleware's
// TokenVerifier contract.
type sessionVerifier struct {
	sessions *service.SessionService
}

func (v *sessionVerifier) VerifyToken(ctx context.Context, token string) (*httpx.Principal, error) {
	u, err := v.sessions.ValidateSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	return &httpx.Principal{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
	}, nil
}
