// Package archive talks to the paper archive HTTP service.
package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ytget/terminal-archive/internal/model"
)

// Endpoints of the archive service
const (
	PapersPath = "/api/papers"
	UploadPath = "/upload"
)

// DefaultTimeout bounds the paper list request
const DefaultTimeout = 15 * time.Second

// maxListBytes caps the paper list body
const maxListBytes = 32 << 20

// StatusError is returned when the archive answers with a non-2xx status
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d %s",
		e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// ErrInvalidBaseURL is returned by NewClient for unusable server addresses
var ErrInvalidBaseURL = errors.New("archive: base URL must be an absolute http(s) URL")

// Client fetches data from the archive
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a client for the archive at baseURL
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{baseURL: u, http: httpClient, logger: logger}, nil
}

// BaseURL returns the server address
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Endpoint joins an absolute path onto the base URL
func (c *Client) Endpoint(path string) string {
	ref := &url.URL{Path: path}
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + ref.EscapedPath()
	u.RawPath = ""
	return u.String()
}

// Resolve turns a paper URL, possibly relative like /f/m.pdf, into an
// absolute URL on the archive server.
func (c *Client) Resolve(ref string) (*url.URL, error) {
	r, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return nil, fmt.Errorf("parse paper url %q: %w", ref, err)
	}
	resolved := c.baseURL.ResolveReference(r)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return nil, fmt.Errorf("paper url %q has unsupported scheme %q", ref, resolved.Scheme)
	}
	return resolved, nil
}

// FetchPapers downloads the full paper list. Any transport error or
// non-2xx answer is returned; the caller decides what the user sees.
func (c *Client) FetchPapers(ctx context.Context) ([]model.Paper, error) {
	endpoint := c.Endpoint(PapersPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build papers request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch papers: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &StatusError{Method: http.MethodGet, URL: endpoint, StatusCode: resp.StatusCode}
	}

	var papers []model.Paper
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxListBytes)).Decode(&papers); err != nil {
		return nil, fmt.Errorf("decode papers: %w", err)
	}
	if papers == nil {
		papers = []model.Paper{}
	}

	c.logger.Debug("papers fetched",
		"count", len(papers),
		"elapsed", time.Since(started).Round(time.Millisecond))
	return papers, nil
}
