package rankcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 512

// HTTPClient wraps http.Client with timeout and request pacing
type HTTPClient struct {
	client  *http.Client
	limiter *rate.Limiter
}

// newHTTPClient creates a new HTTP client. rps <= 0 disables pacing.
func newHTTPClient(timeout time.Duration, rps float64, burst int) *HTTPClient {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	if burst < 1 {
		burst = 1
	}
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a paced POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// submitBoard posts one leaderboard request and decodes the ranked board.
func submitBoard(ctx context.Context, client *HTTPClient, url string, req request) (board, error) {
	resp, err := client.Post(ctx, url, req)
	if err != nil {
		return board{}, fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return board{}, fmt.Errorf("%w: status %d: %s", ErrSubmit, resp.StatusCode, bytes.TrimSpace(msg))
	}

	var b board
	if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
		return board{}, fmt.Errorf("%w: decode response: %w", ErrSubmit, err)
	}
	return b, nil
}
