package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/phishscan/phishscan/internal/config"
	"github.com/phishscan/phishscan/internal/model"
)

// Extractor is the feature extraction surface the builder needs. The
// extraction engine satisfies it.
type Extractor interface {
	Extract(ctx context.Context, rawURL, rawHTML string) (*model.ExtractionReport, error)
	Schema() *model.Schema
}

// PageFetcher retrieves page HTML for a URL. The HTTP fetch client
// satisfies it.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

// LabeledURL is one dataset input: a URL and its ground-truth label
// (1 phishing, 0 benign).
type LabeledURL struct {
	URL   string
	Label int
}

// LabeledReport pairs an extraction result with its label.
type LabeledReport struct {
	Report *model.ExtractionReport
	Label  int
}

// Builder extracts features for many inputs concurrently.
type Builder struct {
	extractor Extractor
	fetcher   PageFetcher
	logger    *slog.Logger
	workers   int
	limiter   *rate.Limiter
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithFetcher sets the page fetcher used for URL inputs. Without one,
// URL inputs are extracted against empty HTML (URL-only features).
func WithFetcher(f PageFetcher) BuilderOption {
	return func(b *Builder) {
		b.fetcher = f
	}
}

// WithWorkers bounds concurrent extractions.
func WithWorkers(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.workers = n
		}
	}
}

// WithRateLimit caps fetches per second across all workers. Zero or
// negative disables the limit.
func WithRateLimit(perSecond float64) BuilderOption {
	return func(b *Builder) {
		if perSecond > 0 {
			b.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		} else {
			b.limiter = nil
		}
	}
}

// WithBuilderLogger sets the structured logger.
func WithBuilderLogger(l *slog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = l
	}
}

// NewBuilder creates a dataset builder around an extractor.
func NewBuilder(e Extractor, opts ...BuilderOption) *Builder {
	b := &Builder{
		extractor: e,
		logger:    slog.New(slog.DiscardHandler),
		workers:   config.DefaultWorkers,
		limiter:   rate.NewLimiter(rate.Limit(config.DefaultRequestsPerSecond), 1),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildFromURLs fetches and extracts every input URL. Inputs whose
// fetch fails are still extracted with empty HTML, matching the
// engine's degraded path; inputs whose extraction fails are dropped
// with a log entry. Results are ordered like the inputs.
func (b *Builder) BuildFromURLs(ctx context.Context, inputs []LabeledURL) ([]*LabeledReport, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInput
	}

	reports := make([]*LabeledReport, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for i, in := range inputs {
		g.Go(func() error {
			if b.limiter != nil {
				if err := b.limiter.Wait(gctx); err != nil {
					return err
				}
			}

			var html string
			if b.fetcher != nil {
				var err error
				html, err = b.fetcher.Fetch(gctx, in.URL)
				if err != nil {
					b.logger.WarnContext(gctx, "page fetch failed, extracting URL features only",
						slog.String("url", in.URL),
						slog.String("reason", err.Error()))
					html = ""
				}
			}

			report, err := b.extractor.Extract(gctx, in.URL, html)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				b.logger.WarnContext(gctx, "extraction failed, dropping input",
					slog.String("url", in.URL),
					slog.String("reason", err.Error()))
				return nil
			}
			reports[i] = &LabeledReport{Report: report, Label: in.Label}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*LabeledReport, 0, len(reports))
	for _, r := range reports {
		if r != nil {
			out = append(out, r)
		}
	}
	return out, nil
}

// BuildFromHTMLDir extracts features from saved phishing pages in dir.
// Each .html file is labeled phishing and paired with a synthetic URL
// derived from its name, the same convention the training corpus used.
func (b *Builder) BuildFromHTMLDir(ctx context.Context, dir string) ([]*LabeledReport, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read page directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ext := strings.ToLower(filepath.Ext(entry.Name())); ext == ".html" || ext == ".htm" {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return nil, ErrNoInput
	}
	sort.Strings(names)

	reports := make([]*LabeledReport, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for i, name := range names {
		g.Go(func() error {
			raw, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				b.logger.WarnContext(gctx, "unreadable page file, dropping",
					slog.String("file", name),
					slog.String("reason", err.Error()))
				return nil
			}

			report, err := b.extractor.Extract(gctx, SyntheticURL(name), string(raw))
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				b.logger.WarnContext(gctx, "extraction failed, dropping page",
					slog.String("file", name),
					slog.String("reason", err.Error()))
				return nil
			}
			reports[i] = &LabeledReport{Report: report, Label: 1}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*LabeledReport, 0, len(reports))
	for _, r := range reports {
		if r != nil {
			out = append(out, r)
		}
	}
	return out, nil
}

// SyntheticURL derives the placeholder URL recorded for a saved page
// file, matching the training corpus convention.
func SyntheticURL(filename string) string {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	return "http://fake-" + name + ".xyz"
}
