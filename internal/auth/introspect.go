// Package auth resolves session tokens to authenticated user identities.
// Token issuance (registration, login, passwords) belongs to the external
// identity provider; this package only consumes its sessions.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	apperrors "github.com/louisbranch/taskdeck/internal/platform/errors"
)

// ErrInvalidSession indicates a session token that is absent, expired, or
// rejected by the identity provider.
var ErrInvalidSession = apperrors.New(apperrors.CodeUnauthenticated, "session is not active")

// Identity is the resolved principal for one request.
type Identity struct {
	UserID string
}

// Introspector validates a session token and resolves its user.
type Introspector interface {
	IntrospectSession(ctx context.Context, token string) (Identity, error)
}

// IntrospectionResult mirrors the identity provider introspection JSON
// response.
type IntrospectionResult struct {
	Active bool   `json:"active"`
	UserID string `json:"user_id"`
}

// HTTPIntrospector validates session tokens against a remote HTTP
// introspect endpoint.
type HTTPIntrospector struct {
	url            string
	resourceSecret string
	client         *http.Client
}

// NewHTTPIntrospector creates an introspector that POSTs to the given URL.
func NewHTTPIntrospector(url, resourceSecret string, client *http.Client) *HTTPIntrospector {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPIntrospector{
		url:            url,
		resourceSecret: resourceSecret,
		client:         client,
	}
}

// IntrospectSession validates the token by calling the introspect endpoint.
func (h *HTTPIntrospector) IntrospectSession(ctx context.Context, token string) (Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, nil)
	if err != nil {
		return Identity{}, fmt.Errorf("build introspect request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if h.resourceSecret != "" {
		req.Header.Set("X-Resource-Secret", h.resourceSecret)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("introspect request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Identity{}, fmt.Errorf("introspect returned %s", resp.Status)
	}

	var result IntrospectionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Identity{}, fmt.Errorf("decode introspect response: %w", err)
	}
	if !result.Active || result.UserID == "" {
		return Identity{}, ErrInvalidSession
	}
	return Identity{UserID: result.UserID}, nil
}
