package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// Timeouts mirror the behavior the classifier's training data was collected
// with: generous for the page itself, short for per-image fetches so that a
// single dead image host cannot stall an extraction.
const (
	// DefaultFetchTimeout is the timeout for fetching the page HTML.
	DefaultFetchTimeout = 10 * time.Second

	// DefaultImageTimeout is the per-image fetch timeout. Images are a
	// secondary signal; a slow image host should fail fast and default.
	DefaultImageTimeout = 5 * time.Second

	// DefaultWhoisTimeout bounds the registration lookup. WHOIS servers
	// are frequently slow or unreachable; features default on expiry.
	DefaultWhoisTimeout = 10 * time.Second

	// DefaultHeadlessTimeout bounds the optional headless-render fallback.
	// Browser startup plus navigation needs more headroom than a plain GET.
	DefaultHeadlessTimeout = 30 * time.Second

	// DefaultMaxBodySize limits the HTML response body size.
	// 5MB covers real pages while preventing memory exhaustion.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// DefaultMaxImageSize limits per-image downloads.
	DefaultMaxImageSize = 5 * 1024 * 1024

	// DefaultImageConcurrency is the number of images processed in
	// parallel within one extraction. Each image may block on a network
	// fetch, so a small pool keeps extractions fast without hammering
	// image hosts.
	DefaultImageConcurrency = 4

	// DefaultWorkers is the number of concurrent extractions in the
	// bulk dataset builder.
	DefaultWorkers = 10

	// DefaultRequestsPerSecond is the dataset builder's politeness limit
	// across all workers.
	DefaultRequestsPerSecond = 5

	// DefaultVectorDim is the text-vector dimension used when no trained
	// vectorizer model is supplied. It matches the dimension the bundled
	// classifier was trained with.
	DefaultVectorDim = 20

	// NewDomainAgeDays is the age threshold below which a domain is
	// flagged as newly registered.
	NewDomainAgeDays = 30

	// DefaultUserAgent identifies phishscan in HTTP requests.
	DefaultUserAgent = "phishscan/1.0 (+https://github.com/phishscan/phishscan)"

	// AppName is the application name used for XDG directory paths.
	AppName = "phishscan"
)

// Config holds all options for the extraction engine and CLI.
// It is populated from CLI flags and passed by reference into every
// component; there is no global mutable state.
type Config struct {
	// FetchTimeout is the timeout for fetching the page HTML.
	FetchTimeout time.Duration

	// ImageTimeout is the per-image fetch timeout in the visual analyzer.
	ImageTimeout time.Duration

	// WhoisTimeout bounds the registration lookup.
	WhoisTimeout time.Duration

	// HeadlessTimeout bounds the headless-render fallback fetch.
	HeadlessTimeout time.Duration

	// MaxBodySize limits the HTML response body size in bytes.
	MaxBodySize int64

	// MaxImageSize limits per-image downloads in bytes.
	MaxImageSize int64

	// ImageConcurrency is the per-extraction image worker limit.
	ImageConcurrency int

	// UserAgent is sent with every HTTP request.
	UserAgent string

	// CorporaPath optionally points to a YAML file overriding the
	// built-in keyword corpora. Empty means use the defaults.
	CorporaPath string

	// VectorizerPath optionally points to a trained vectorizer model
	// artifact. Empty means an untrained model (all-zero vectors of
	// DefaultVectorDim), which keeps the schema shape stable.
	VectorizerPath string

	// UseHeadless enables the headless-render fallback when the plain
	// fetch yields no usable content.
	UseHeadless bool

	// DisableWhois skips the registration lookup entirely. The
	// registration features default to zero, same as a failed lookup.
	DisableWhois bool

	// DisableImageFetch skips remote image fetching in the visual
	// analyzer. Inline (data URL) images are still analyzed.
	DisableImageFetch bool

	// Workers is the dataset builder's concurrent extraction limit.
	Workers int

	// RequestsPerSecond is the dataset builder's politeness limit.
	RequestsPerSecond float64

	// DBDir is the directory for the optional SQLite feature store.
	// Empty means records are not persisted.
	DBDir string

	// Verbose enables debug-level logging.
	Verbose bool
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		FetchTimeout:      DefaultFetchTimeout,
		ImageTimeout:      DefaultImageTimeout,
		WhoisTimeout:      DefaultWhoisTimeout,
		HeadlessTimeout:   DefaultHeadlessTimeout,
		MaxBodySize:       DefaultMaxBodySize,
		MaxImageSize:      DefaultMaxImageSize,
		ImageConcurrency:  DefaultImageConcurrency,
		UserAgent:         DefaultUserAgent,
		Workers:           DefaultWorkers,
		RequestsPerSecond: DefaultRequestsPerSecond,
	}
}

// XDGDataDir returns the XDG data directory for phishscan.
// On Linux: ~/.local/share/phishscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for phishscan.
// On Linux: ~/.config/phishscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks that the configuration is usable.
// It returns the first problem found; fixing one error often makes
// the rest irrelevant.
func (c *Config) Validate() error {
	if c.FetchTimeout <= 0 || c.ImageTimeout <= 0 || c.WhoisTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxBodySize < 0 || c.MaxImageSize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.ImageConcurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}
	if c.RequestsPerSecond <= 0 {
		return ErrInvalidRateLimit
	}
	return nil
}
