// File: services/relay/transport.go
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"huddle/config"
)

// Transport delivers one message to a member's relay agent.
type Transport interface {
	Send(ctx context.Context, relayKey, message string) error
}

// HTTPTransport posts messages to the relay provider's inbound API,
// authenticating each call with the member's own relay key.
type HTTPTransport struct {
	APIURL string
	Client *http.Client
}

// NewHTTPTransport builds a transport from the application config.
func NewHTTPTransport() *HTTPTransport {
	timeout := time.Duration(config.AppConfig.RelayTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPTransport{
		APIURL: config.AppConfig.RelayAPIURL,
		Client: &http.Client{Timeout: timeout},
	}
}

// Send posts the message payload. Any non-2xx answer is an error so
// the caller can record the member as failed.
func (t *HTTPTransport) Send(ctx context.Context, relayKey, message string) error {
	if t.APIURL == "" {
		return fmt.Errorf("relay API URL is not configured")
	}

	payload, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return fmt.Errorf("failed to marshal relay payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.APIURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build relay request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+relayKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return fmt.Errorf("relay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("relay returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
