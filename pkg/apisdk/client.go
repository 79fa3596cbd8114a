// Package apisdk is a typed Go client for the portfolio API, plus the
// request and response types the server itself marshals. Keeping both in
// one package guarantees the client and server can never drift apart.
package apisdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SDKClient talks to the portfolio API. The zero value is not usable; use
// NewSDKClient.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client for the API at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login authenticates and returns a Session holding the opaque token.
func (c *SDKClient) Login(ctx context.Context, username, password string) (*Session, error) {
	var out LoginResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", "",
		LoginRequest{Username: username, Password: password}, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &Session{client: c, token: out.Token, user: out.User}, nil
}

// NewSessionFromToken wraps an existing token, e.g. one persisted from an
// earlier login.
func (c *SDKClient) NewSessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}

// Portfolio lists the public catalogue. category and itemType narrow the
// listing when non-empty.
func (c *SDKClient) Portfolio(ctx context.Context, category, itemType string) ([]PortfolioItem, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if itemType != "" {
		q.Set("item_type", itemType)
	}
	path := "/api/portfolio"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []PortfolioItem
	if err := c.doJSON(ctx, http.MethodGet, path, "", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// PortfolioItem fetches a single public item.
func (c *SDKClient) PortfolioItem(ctx context.Context, id string) (PortfolioItem, error) {
	var out PortfolioItem
	err := c.doJSON(ctx, http.MethodGet, "/api/portfolio/"+url.PathEscape(id), "", nil, &out, http.StatusOK)
	return out, err
}

// SubmitContact sends a contact-form message. No authentication required.
func (c *SDKClient) SubmitContact(ctx context.Context, req ContactRequest) error {
	var out MessageResponse
	return c.doJSON(ctx, http.MethodPost, "/api/contact", "", req, &out, http.StatusCreated)
}

// Livez checks the liveness probe.
func (c *SDKClient) Livez(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.doJSON(ctx, http.MethodGet, "/livez", "", nil, &out, http.StatusOK)
	return out, err
}

// Readyz checks the readiness probe, including database connectivity.
func (c *SDKClient) Readyz(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.doJSON(ctx, http.MethodGet, "/readyz", "", nil, &out, http.StatusOK)
	return out, err
}

// doJSON performs a request with an optional JSON body and decodes the
// response into out. token, when non-empty, is sent as a bearer header.
func (c *SDKClient) doJSON(
	ctx context.Context,
	method, path, token string,
	in, out any,
	expectedStatus int,
) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	return decodeJSON(resp, out, expectedStatus)
}

// decodeJSON decodes a response into target, turning non-2xx bodies into
// typed *APIError values.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	if target == nil || len(bodyBytes) == 0 {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
