// Package fetch retrieves the raw open-issue listings from tracker endpoints.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/danielolaszy/fetchissues/internal/logging"
	"github.com/danielolaszy/fetchissues/internal/tracker"
	"github.com/google/go-github/v41/github"
	"golang.org/x/oauth2"
)

// StatusError is returned when an endpoint answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %s", e.URL, e.Status)
}

// Client fetches tracker listings. GitHub endpoints go through a go-github
// client so API error bodies are decoded; all others use plain HTTP.
type Client struct {
	http   *http.Client
	github *github.Client
}

// NewHTTPClient returns an http.Client with bounded dial and handshake
// times. There is no overall request timeout.
func NewHTTPClient() *http.Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 10 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &http.Client{Transport: tr}
}

// NewClient creates a Client on top of hc. When githubToken is set, requests
// to GitHub endpoints are authenticated with it.
func NewClient(hc *http.Client, githubToken string) *Client {
	if hc == nil {
		hc = NewHTTPClient()
	}

	ghHTTP := hc
	if githubToken != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, hc)
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: githubToken},
		)
		ghHTTP = oauth2.NewClient(ctx, ts)
		logging.Debug("github token configured", "token", logging.MaskSensitive(githubToken))
	}

	return &Client{
		http:   hc,
		github: github.NewClient(ghHTTP),
	}
}

// Fetch returns the body served at the tracker's endpoint.
func (c *Client) Fetch(ctx context.Context, d tracker.Descriptor) (string, error) {
	logging.Debug("fetching tracker",
		"project", d.Project,
		"kind", d.Kind.String(),
		"endpoint", d.Endpoint,
		"headers", logging.MaskHeaders(d.Headers))

	start := time.Now()
	var body string
	var err error
	if d.Kind == tracker.GitHub {
		body, err = c.fetchGitHub(ctx, d)
	} else {
		body, err = c.fetchHTTP(ctx, d)
	}
	if err != nil {
		return "", err
	}

	logging.Debug("fetched tracker",
		"project", d.Project,
		"bytes", len(body),
		"elapsed", time.Since(start).Truncate(time.Millisecond))
	return body, nil
}

func (c *Client) fetchGitHub(ctx context.Context, d tracker.Descriptor) (string, error) {
	req, err := c.github.NewRequest(http.MethodGet, d.Endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build github request: %w", err)
	}
	for k, v := range d.Headers {
		req.Header.Set(k, v)
	}

	var buf bytes.Buffer
	if _, err := c.github.Do(ctx, req, &buf); err != nil {
		return "", fmt.Errorf("failed to fetch github issues: %w", err)
	}
	return buf.String(), nil
}

func (c *Client) fetchHTTP(ctx context.Context, d tracker.Descriptor) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.Endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	for k, v := range d.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", d.Endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{URL: d.Endpoint, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response from %s: %w", d.Endpoint, err)
	}
	return string(b), nil
}
