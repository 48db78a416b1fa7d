package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/phishscan/phishscan/internal/config"
)

// HeadlessFetcher renders a page in a headless browser and returns the
// HTML after JavaScript has run. It exists for phishing pages that build
// their content client-side and hand static fetchers an empty shell.
type HeadlessFetcher struct {
	timeout   time.Duration
	userAgent string
}

// HeadlessOption configures a HeadlessFetcher.
type HeadlessOption func(*HeadlessFetcher)

// WithHeadlessTimeout sets the overall render timeout.
func WithHeadlessTimeout(timeout time.Duration) HeadlessOption {
	return func(f *HeadlessFetcher) {
		f.timeout = timeout
	}
}

// WithHeadlessUserAgent sets the browser User-Agent.
func WithHeadlessUserAgent(ua string) HeadlessOption {
	return func(f *HeadlessFetcher) {
		f.userAgent = ua
	}
}

// NewHeadlessFetcher creates a headless page fetcher.
func NewHeadlessFetcher(opts ...HeadlessOption) *HeadlessFetcher {
	f := &HeadlessFetcher{
		timeout:   config.DefaultHeadlessTimeout,
		userAgent: config.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch navigates to rawURL in a headless browser and returns the
// rendered document HTML.
func (f *HeadlessFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if rawURL == "" {
		return "", ErrEmptyURL
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("ignore-certificate-errors", true),
		chromedp.UserAgent(f.userAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, f.timeout)
	defer cancelRun()

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(rawURL),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("headless fetch %s: %w", rawURL, err)
	}
	return html, nil
}
