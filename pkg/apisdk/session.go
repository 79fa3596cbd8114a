package apisdk

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
)

// Session is an authenticated client bound to one opaque token. Sessions
// do not refresh themselves; when the token expires the next call returns
// an *APIError with code authentication_required and the caller logs in
// again.
type Session struct {
	client *SDKClient
	token  string
	user   UserInfo
}

// Token returns the raw session token, e.g. for persisting across runs.
func (s *Session) Token() string {
	return s.token
}

// Me returns the account this session belongs to.
func (s *Session) Me(ctx context.Context) (UserInfo, error) {
	var out UserInfo
	err := s.client.doJSON(ctx, http.MethodGet, "/api/auth/me", s.token, nil, &out, http.StatusOK)
	if err == nil {
		s.user = out
	}
	return out, err
}

// Logout invalidates the session server-side. The Session must not be
// used afterwards.
func (s *Session) Logout(ctx context.Context) error {
	var out MessageResponse
	return s.client.doJSON(ctx, http.MethodPost, "/api/auth/logout", s.token, nil, &out, http.StatusOK)
}

// ChangePassword swaps the account password. Existing sessions, including
// this one, stay valid.
func (s *Session) ChangePassword(ctx context.Context, current, next string) error {
	var out MessageResponse
	return s.client.doJSON(ctx, http.MethodPost, "/api/auth/change-password", s.token,
		ChangePasswordRequest{CurrentPassword: current, NewPassword: next}, &out, http.StatusOK)
}

// AdminPortfolio lists the catalogue including deactivated items.
func (s *Session) AdminPortfolio(ctx context.Context) ([]PortfolioItem, error) {
	var out []PortfolioItem
	err := s.client.doJSON(ctx, http.MethodGet, "/api/admin/portfolio", s.token, nil, &out, http.StatusOK)
	return out, err
}

// CreatePortfolioItem adds a new catalogue entry.
func (s *Session) CreatePortfolioItem(ctx context.Context, req PortfolioItemRequest) (PortfolioItem, error) {
	var out PortfolioItem
	err := s.client.doJSON(ctx, http.MethodPost, "/api/admin/portfolio", s.token, req, &out, http.StatusCreated)
	return out, err
}

// UpdatePortfolioItem replaces the mutable fields of an item.
func (s *Session) UpdatePortfolioItem(ctx context.Context, id string, req PortfolioItemRequest) (PortfolioItem, error) {
	var out PortfolioItem
	err := s.client.doJSON(ctx, http.MethodPut,
		"/api/admin/portfolio/"+url.PathEscape(id), s.token, req, &out, http.StatusOK)
	return out, err
}

// DeletePortfolioItem deactivates an item. The row and any uploaded media
// survive.
func (s *Session) DeletePortfolioItem(ctx context.Context, id string) error {
	var out MessageResponse
	return s.client.doJSON(ctx, http.MethodDelete,
		"/api/admin/portfolio/"+url.PathEscape(id), s.token, nil, &out, http.StatusOK)
}

// Upload stores a media file and returns where it landed.
func (s *Session) Upload(ctx context.Context, filename string, content io.Reader) (UploadResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return UploadResponse{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return UploadResponse{}, fmt.Errorf("buffer upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return UploadResponse{}, fmt.Errorf("finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.client.BaseURL+"/api/admin/upload", &buf)
	if err != nil {
		return UploadResponse{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return UploadResponse{}, fmt.Errorf("send request: %w", err)
	}

	var out UploadResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return UploadResponse{}, err
	}
	return out, nil
}

// ContactMessages lists the admin inbox, newest first.
func (s *Session) ContactMessages(ctx context.Context) ([]ContactMessage, error) {
	var out []ContactMessage
	err := s.client.doJSON(ctx, http.MethodGet, "/api/admin/contact", s.token, nil, &out, http.StatusOK)
	return out, err
}

// MarkMessageRead flags an inbox message as handled.
func (s *Session) MarkMessageRead(ctx context.Context, id string) error {
	var out MessageResponse
	return s.client.doJSON(ctx, http.MethodPut,
		"/api/admin/contact/"+url.PathEscape(id)+"/read", s.token, nil, &out, http.StatusOK)
}

// Stats fetches the admin dashboard counters.
func (s *Session) Stats(ctx context.Context) (StatsResponse, error) {
	var out StatsResponse
	err := s.client.doJSON(ctx, http.MethodGet, "/api/admin/stats", s.token, nil, &out, http.StatusOK)
	return out, err
}
