// File: mcpserver/client.go
package mcpserver

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

	"huddle/models"
)

// apiClient is a minimal HTTP client for the coordination API. All
// state lives behind the API; the MCP process holds none of its own.
type apiClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func newAPIClient(baseURL, apiKey string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		// Slot finding blocks for up to the server's poll deadline,
		// so the client timeout must comfortably exceed it.
		http: &http.Client{Timeout: 60 * time.Second},
	}
}

// key resolves the per-call API key, falling back to the configured one.
func (c *apiClient) key(override string) string {
	if override != "" {
		return override
	}
	return c.apiKey
}

// apiError carries the body of a non-2xx reply so tools can surface
// the server's own message instead of a bare status code.
type apiError struct {
	Status int
	Body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api returned %d: %s", e.Status, e.Body)
}

func (c *apiClient) do(ctx context.Context, method, path string, query url.Values, body any, apiKey string, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if key := c.key(apiKey); key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &apiError{Status: resp.StatusCode, Body: strings.TrimSpace(string(excerpt))}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *apiClient) get(ctx context.Context, path string, query url.Values, apiKey string, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, apiKey, out)
}

func (c *apiClient) post(ctx context.Context, path string, body any, apiKey string, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, apiKey, out)
}

// firstTeam resolves the caller's team, nil when they belong to none.
// Tools operate on the first team a member belongs to.
func (c *apiClient) firstTeam(ctx context.Context, apiKey string) (*models.Team, error) {
	var resp struct {
		Teams []models.Team `json:"teams"`
	}
	if err := c.get(ctx, "/api/teams/me", nil, apiKey, &resp); err != nil {
		return nil, err
	}
	if len(resp.Teams) == 0 {
		return nil, nil
	}
	return &resp.Teams[0], nil
}
