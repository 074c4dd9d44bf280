// Package fetch retrieves raw page content over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"ragnews/internal/port"
)

// Client fetches pages with a bounded response size. URLs without a scheme
// are retried once with an https:// prefix.
type Client struct {
	http         *http.Client
	userAgent    string
	maxBodyBytes int64
}

func NewClient(timeout time.Duration, userAgent string, maxBodyBytes int64) *Client {
	if maxBodyBytes <= 0 {
		maxBodyBytes = 10 * 1024 * 1024
	}
	return &Client{
		http:         &http.Client{Timeout: timeout},
		userAgent:    userAgent,
		maxBodyBytes: maxBodyBytes,
	}
}

// Fetch downloads rawURL and returns the body along with the URL actually
// requested (after any scheme fixup).
func (c *Client) Fetch(ctx context.Context, rawURL string) (port.FetchResult, error) {
	fetchURL := normalizeURL(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return port.FetchResult{}, fmt.Errorf("build request for %s: %w", fetchURL, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return port.FetchResult{}, fmt.Errorf("fetch %s: %w", fetchURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return port.FetchResult{}, fmt.Errorf("fetch %s: unexpected status %d", fetchURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes))
	if err != nil {
		return port.FetchResult{}, fmt.Errorf("read body of %s: %w", fetchURL, err)
	}

	return port.FetchResult{Body: body, FinalURL: fetchURL}, nil
}

// normalizeURL prefixes bare host/path URLs with https://.
func normalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" {
		return "https://" + rawURL
	}
	return rawURL
}
