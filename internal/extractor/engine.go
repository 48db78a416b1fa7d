package extractor

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/phishscan/phishscan/internal/analyzer"
	"github.com/phishscan/phishscan/internal/config"
	"github.com/phishscan/phishscan/internal/fetch"
	"github.com/phishscan/phishscan/internal/htmldoc"
	"github.com/phishscan/phishscan/internal/model"
	"github.com/phishscan/phishscan/internal/ocr"
	"github.com/phishscan/phishscan/internal/registry"
	"github.com/phishscan/phishscan/internal/urlinfo"
	"github.com/phishscan/phishscan/internal/vectorizer"
)

// Engine extracts the full feature record for a page. It is safe for
// concurrent use: the corpora, vectorizer model, and schema are shared
// read-only, and every Extract call works on its own state.
type Engine struct {
	corpora *config.KeywordCorpora
	vec     *vectorizer.Model
	schema  *model.Schema
	logger  *slog.Logger

	imageFetcher     fetch.ImageFetcher
	ocrEngine        ocr.Engine
	lookup           registry.Lookup
	imageConcurrency int
	now              func() time.Time

	analyzers []analyzer.Analyzer
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. Discarded by default.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithImageFetcher enables remote image analysis. Without it only
// embedded base64 images are inspected.
func WithImageFetcher(f fetch.ImageFetcher) Option {
	return func(e *Engine) {
		e.imageFetcher = f
	}
}

// WithOCREngine sets the OCR backend for image text detection.
func WithOCREngine(o ocr.Engine) Option {
	return func(e *Engine) {
		e.ocrEngine = o
	}
}

// WithRegistryLookup enables the registration analyzer. Without it the
// domain age features stay at their defaults.
func WithRegistryLookup(l registry.Lookup) Option {
	return func(e *Engine) {
		e.lookup = l
	}
}

// WithImageConcurrency bounds concurrent per-image tasks.
func WithImageConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.imageConcurrency = n
		}
	}
}

// WithClock overrides the engine clock for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an extraction engine. The vectorizer model fixes the
// schema dimension for the lifetime of the engine.
func NewEngine(corpora *config.KeywordCorpora, vec *vectorizer.Model, opts ...Option) *Engine {
	e := &Engine{
		corpora:          corpora,
		vec:              vec,
		schema:           model.NewSchema(vec.Dim()),
		logger:           slog.New(slog.DiscardHandler),
		ocrEngine:        ocr.NopEngine{},
		imageConcurrency: config.DefaultImageConcurrency,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	visualOpts := []analyzer.VisualOption{
		analyzer.WithOCREngine(e.ocrEngine),
		analyzer.WithImageConcurrency(e.imageConcurrency),
	}
	if e.imageFetcher != nil {
		visualOpts = append(visualOpts, analyzer.WithImageFetcher(e.imageFetcher))
	}
	registrationOpts := []analyzer.RegistrationOption{
		analyzer.WithNow(e.now),
	}
	if e.lookup != nil {
		registrationOpts = append(registrationOpts, analyzer.WithRegistryLookup(e.lookup))
	}

	e.analyzers = []analyzer.Analyzer{
		analyzer.NewLexical(corpora),
		analyzer.NewContent(corpora, vec),
		analyzer.NewStructural(corpora),
		analyzer.NewUrgency(),
		analyzer.NewVisual(corpora, visualOpts...),
		analyzer.NewRegistration(registrationOpts...),
	}
	return e
}

// Schema returns the engine's feature schema.
func (e *Engine) Schema() *model.Schema {
	return e.schema
}

// Extract computes the feature record for the page at rawURL with the
// given markup. rawHTML may be empty; content features then fall back to
// defaults and the report is marked degraded. The error return is
// ErrEmptyURL or the context error; every other failure is folded into
// the record as defaults.
func (e *Engine) Extract(ctx context.Context, rawURL, rawHTML string) (*model.ExtractionReport, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, ErrEmptyURL
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := e.now()

	target := &analyzer.Target{
		URL:     rawURL,
		Domain:  urlinfo.Resolve(rawURL),
		RawHTML: rawHTML,
		Doc:     htmldoc.Parse(rawHTML),
	}

	e.logger.DebugContext(ctx, "extraction started",
		slog.String("url", rawURL),
		slog.String("domain", target.Domain.Domain),
		slog.Int("analyzers", len(e.analyzers)))

	type outcome struct {
		name   string
		result *analyzer.Result
		err    error
	}
	outcomes := make([]outcome, len(e.analyzers))

	g, gctx := errgroup.WithContext(ctx)
	for i, a := range e.analyzers {
		g.Go(func() error {
			res, err := a.Analyze(gctx, target)
			outcomes[i] = outcome{name: a.Name(), result: res, err: err}
			return nil
		})
	}
	// Analyzer errors are captured per outcome; Wait cannot fail.
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	agg := newAggregator(e.schema)
	for _, o := range outcomes {
		if o.err != nil {
			e.logger.WarnContext(ctx, "analyzer fell back to defaults",
				slog.String("analyzer", o.name),
				slog.String("reason", o.err.Error()))
			agg.fail(o.name, o.err)
			continue
		}
		agg.apply(o.name, o.result)
	}

	report := agg.report()
	report.URL = rawURL
	report.Domain = target.Domain
	report.DegradedFetch = rawHTML == ""
	report.ExtractedAt = start
	report.Elapsed = e.now().Sub(start)

	e.logger.DebugContext(ctx, "extraction finished",
		slog.String("url", rawURL),
		slog.Int("failures", len(report.Failures)),
		slog.Duration("elapsed", report.Elapsed))
	return report, nil
}
