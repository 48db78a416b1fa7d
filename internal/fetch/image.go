package fetch

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	// Register the decoders for the formats phishing pages actually use.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/phishscan/phishscan/internal/config"
)

// ImageFetcher retrieves a referenced image and reports its pixel
// dimensions. Implementations must be safe for concurrent use.
type ImageFetcher interface {
	// FetchImage downloads and decodes the image at rawURL, resolving
	// it against baseURL when relative. It returns the decoded config
	// and the bytes that were read.
	FetchImage(ctx context.Context, baseURL, rawURL string) (image.Config, []byte, error)
}

// HTTPImageFetcher fetches images over HTTP.
type HTTPImageFetcher struct {
	httpClient   *http.Client
	userAgent    string
	maxImageSize int64
}

// ImageFetcherOption configures an HTTPImageFetcher.
type ImageFetcherOption func(*HTTPImageFetcher)

// WithImageHTTPClient replaces the underlying HTTP client.
func WithImageHTTPClient(hc *http.Client) ImageFetcherOption {
	return func(f *HTTPImageFetcher) {
		f.httpClient = hc
	}
}

// WithImageUserAgent sets the User-Agent header for image requests.
func WithImageUserAgent(ua string) ImageFetcherOption {
	return func(f *HTTPImageFetcher) {
		f.userAgent = ua
	}
}

// WithMaxImageSize sets the maximum image body size in bytes.
func WithMaxImageSize(size int64) ImageFetcherOption {
	return func(f *HTTPImageFetcher) {
		f.maxImageSize = size
	}
}

// WithImageTimeout sets the per-image request timeout.
func WithImageTimeout(timeout time.Duration) ImageFetcherOption {
	return func(f *HTTPImageFetcher) {
		f.httpClient.Timeout = timeout
	}
}

// NewHTTPImageFetcher creates an image fetcher with sensible defaults.
func NewHTTPImageFetcher(opts ...ImageFetcherOption) *HTTPImageFetcher {
	f := &HTTPImageFetcher{
		httpClient:   &http.Client{Timeout: config.DefaultImageTimeout},
		userAgent:    config.DefaultUserAgent,
		maxImageSize: config.DefaultMaxImageSize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchImage implements ImageFetcher.
func (f *HTTPImageFetcher) FetchImage(ctx context.Context, baseURL, rawURL string) (image.Config, []byte, error) {
	target, err := resolveImageURL(baseURL, rawURL)
	if err != nil {
		return image.Config{}, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return image.Config{}, nil, fmt.Errorf("create image request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "image/*,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return image.Config{}, nil, fmt.Errorf("fetch image %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return image.Config{}, nil, fmt.Errorf("%w: %d for %s", ErrHTTPStatus, resp.StatusCode, target)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxImageSize+1))
	if err != nil {
		return image.Config{}, nil, fmt.Errorf("read image body of %s: %w", target, err)
	}
	if int64(len(body)) > f.maxImageSize {
		return image.Config{}, nil, fmt.Errorf("%w: %s", ErrBodyTooLarge, target)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(body))
	if err != nil {
		return image.Config{}, nil, fmt.Errorf("%w: %s: %v", ErrNotAnImage, target, err)
	}
	return cfg, body, nil
}

// resolveImageURL resolves a possibly relative image reference against
// the page URL.
func resolveImageURL(baseURL, rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", ErrEmptyURL
	}
	ref, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse image URL %q: %w", rawURL, err)
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return "", fmt.Errorf("relative image URL %q without usable base %q", rawURL, baseURL)
	}
	return base.ResolveReference(ref).String(), nil
}
