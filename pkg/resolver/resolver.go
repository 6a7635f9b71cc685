package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// ErrUpstreamUnavailable is returned when the identity service cannot be
// reached within the retry budget. Callers fail closed on it.
var ErrUpstreamUnavailable = errors.New("identity service unavailable")

// Resolver resolves an external identity to the internal principal id.
type Resolver interface {
	ResolveReceiver(ctx context.Context, externalID string) (string, error)
}

// Client resolves identities against the remote identity service over HTTP.
// The lookup sits on the settlement request path, so it carries a bounded
// timeout and a small fixed retry count; indefinite retry belongs to the
// outbox relay, not here.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	MaxRetries int
	RetryDelay time.Duration
	Logger     *slog.Logger
}

// NewClient creates a new identity service client.
func NewClient(baseURL string, timeout time.Duration, maxRetries int, logger *slog.Logger) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
		MaxRetries: maxRetries,
		RetryDelay: 250 * time.Millisecond,
		Logger:     logger,
	}
}

// Make sure we conform to the interface
var _ Resolver = (*Client)(nil)

type resolveResponse struct {
	InternalId string `json:"internal_id"`
}

// ResolveReceiver looks up the internal id for an external identity.
func (c *Client) ResolveReceiver(ctx context.Context, externalID string) (string, error) {
	url := fmt.Sprintf("%s/v1/identities/%s", c.BaseURL, externalID)

	var lastErr error
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(c.RetryDelay):
			}
			c.Logger.Warn("retrying identity lookup", "external_id", externalID, "attempt", attempt)
		}

		internalID, err := c.resolveOnce(ctx, url)
		if err == nil {
			return internalID, nil
		}
		lastErr = err
	}

	return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, lastErr)
}

func (c *Client) resolveOnce(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build identity request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("identity request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("identity service returned status %d", resp.StatusCode)
	}

	var body resolveResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode identity response: %w", err)
	}
	if body.InternalId == "" {
		return "", fmt.Errorf("identity service returned an empty internal id")
	}

	return body.InternalId, nil
}
