// Package source fetches the ladder's published match log and roster over HTTP.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Default file names the ladder publishes next to each other.
const (
	MatchesFile = "matches.csv"
	RosterFile  = "players.csv"
)

// maxBody caps a single download; ladder logs are small text files.
const maxBody = 32 << 20

// Client downloads ladder files relative to a base URL.
type Client struct {
	base *url.URL
	http *http.Client
}

// NewClient returns a client resolving file names against baseURL.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("empty base URL")
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	return &Client{
		base: u,
		http: &http.Client{Timeout: timeout},
	}, nil
}

// URL returns the absolute URL for name.
func (c *Client) URL(name string) string {
	return c.base.ResolveReference(&url.URL{Path: name}).String()
}

// Fetch downloads name and returns its body.
func (c *Client) Fetch(ctx context.Context, name string) ([]byte, error) {
	endpoint := c.URL(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("GET %s: not found", endpoint)
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("GET %s: access denied (HTTP %d)", endpoint, resp.StatusCode)
	default:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, fmt.Errorf("GET %s: HTTP %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", endpoint, err)
	}
	if len(body) > maxBody {
		return nil, fmt.Errorf("GET %s: body exceeds %d bytes", endpoint, maxBody)
	}
	return body, nil
}
