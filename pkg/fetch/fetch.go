// Package fetch retrieves the dump body from the upstream game server.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// StatusError reports a non-success HTTP response from the upstream.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned %s", e.Status)
}

// Config holds fetcher settings.
type Config struct {
	URL     string
	Timeout time.Duration
}

// Client fetches the dump over HTTPS. A single unauthenticated GET per
// run, no retries; a failed fetch just skips the run.
type Client struct {
	http *http.Client
	url  string
}

// New creates a dump fetch client.
func New(cfg Config) *Client {
	return &Client{
		http: &http.Client{Timeout: cfg.Timeout},
		url:  cfg.URL,
	}
}

// Dump performs the GET and returns the response body as text.
func (c *Client) Dump(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("building dump request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching dump: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading dump body: %w", err)
	}
	return string(body), nil
}
