package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/phishscan/phishscan/internal/config"
)

// Client fetches page HTML over HTTP with a body size limit and
// charset-aware decoding.
type Client struct {
	// httpClient performs the requests. Shared so connection pooling
	// works across fetches.
	httpClient *http.Client

	// userAgent is the User-Agent header sent with every request.
	userAgent string

	// maxBodySize limits how many response bytes are read.
	maxBodySize int64
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Useful for tests
// and custom transports.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size in bytes.
func WithMaxBodySize(size int64) ClientOption {
	return func(c *Client) {
		c.maxBodySize = size
	}
}

// WithTimeout sets the per-request timeout on the underlying client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a page fetcher with sensible defaults.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: config.DefaultFetchTimeout},
		userAgent:   config.DefaultUserAgent,
		maxBodySize: config.DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves the page at rawURL and returns its HTML decoded to
// UTF-8. Non-2xx responses and oversized bodies are errors.
func (c *Client) Fetch(ctx context.Context, rawURL string) (string, error) {
	if strings.TrimSpace(rawURL) == "" {
		return "", ErrEmptyURL
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = "http://" + rawURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %d for %s", ErrHTTPStatus, resp.StatusCode, rawURL)
	}

	// Read one byte past the limit to tell truncation from an exact fit.
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return "", fmt.Errorf("read body of %s: %w", rawURL, err)
	}
	if int64(len(body)) > c.maxBodySize {
		return "", fmt.Errorf("%w: %s", ErrBodyTooLarge, rawURL)
	}

	return decodeBody(body, resp.Header.Get("Content-Type")), nil
}

// decodeBody converts the body to UTF-8 using the charset from the
// Content-Type header or byte sniffing. Decoding failures fall back to
// the raw bytes so one bad charset declaration never loses a page.
func decodeBody(body []byte, contentType string) string {
	enc, name, _ := charset.DetermineEncoding(body, contentType)
	if name == "utf-8" {
		return string(body)
	}
	decoded, err := io.ReadAll(enc.NewDecoder().Reader(strings.NewReader(string(body))))
	if err != nil {
		return string(body)
	}
	return string(decoded)
}
