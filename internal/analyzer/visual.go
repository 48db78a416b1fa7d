package analyzer

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/phishscan/phishscan/internal/config"
	"github.com/phishscan/phishscan/internal/fetch"
	"github.com/phishscan/phishscan/internal/model"
	"github.com/phishscan/phishscan/internal/ocr"
)

// Visual inspects the page's images: embedded base64 payloads, oversized
// banner graphics, alert text recognized by OCR, and images placed next
// to a form or link. Campaigns render the scary copy as a picture to
// dodge text filters.
type Visual struct {
	keywords    []string
	fetcher     fetch.ImageFetcher
	engine      ocr.Engine
	concurrency int
}

// VisualOption configures a Visual analyzer.
type VisualOption func(*Visual)

// WithImageFetcher sets the fetcher for remote image references. A nil
// fetcher skips remote images entirely.
func WithImageFetcher(f fetch.ImageFetcher) VisualOption {
	return func(a *Visual) {
		a.fetcher = f
	}
}

// WithOCREngine sets the OCR engine for recognized text.
func WithOCREngine(e ocr.Engine) VisualOption {
	return func(a *Visual) {
		a.engine = e
	}
}

// WithImageConcurrency bounds how many images are processed at once.
func WithImageConcurrency(n int) VisualOption {
	return func(a *Visual) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// NewVisual creates the visual analyzer using the corpora's suspicious
// image keyword list. Without options it processes only embedded base64
// images and skips OCR.
func NewVisual(corpora *config.KeywordCorpora, opts ...VisualOption) *Visual {
	a := &Visual{
		keywords:    corpora.SuspiciousImageKeywords,
		engine:      ocr.NopEngine{},
		concurrency: config.DefaultImageConcurrency,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name implements Analyzer.
func (a *Visual) Name() string { return "visual" }

// visualFlags accumulates the sticky image findings across concurrent
// per-image tasks.
type visualFlags struct {
	mu        sync.Mutex
	large     bool
	base64    bool
	alertText bool
	adjacency bool
}

// Analyze implements Analyzer. Every image reference runs as its own
// bounded task; a broken or slow image affects only its own findings.
func (a *Visual) Analyze(ctx context.Context, t *Target) (*Result, error) {
	flags := &visualFlags{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	t.Doc.Query.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		src = strings.TrimSpace(src)
		if src == "" {
			return
		}

		// Placement is a structural fact, known without fetching.
		nextToAction := s.Parent().Find("form, a").Length() > 0

		g.Go(func() error {
			a.inspectImage(gctx, t.URL, src, nextToAction, flags)
			return nil
		})
	})

	// Tasks never return errors; Wait only surfaces cancellation.
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r := NewResult()
	flags.mu.Lock()
	defer flags.mu.Unlock()
	r.SetBool(model.FieldLargeSuspiciousImage, flags.large)
	r.SetBool(model.FieldBase64ImageDetected, flags.base64)
	r.SetBool(model.FieldOCRAlertTextDetected, flags.alertText)
	r.SetBool(model.FieldAlertImageNearFormOrLink, flags.adjacency)
	return r, nil
}

// inspectImage resolves one image reference and folds its findings into
// flags. Fetch, decode, and OCR failures degrade to whatever was learned
// before the failure.
func (a *Visual) inspectImage(ctx context.Context, pageURL, src string, nextToAction bool, flags *visualFlags) {
	if nextToAction {
		flags.set(func(f *visualFlags) { f.adjacency = true })
	}

	var (
		cfg  image.Config
		data []byte
		err  error
	)
	switch {
	case strings.Contains(src, "base64,"):
		flags.set(func(f *visualFlags) { f.base64 = true })
		cfg, data, err = decodeBase64Image(src)
	case strings.HasPrefix(src, "http"):
		if a.fetcher == nil {
			return
		}
		cfg, data, err = a.fetcher.FetchImage(ctx, pageURL, src)
	default:
		return
	}
	if err != nil {
		return
	}

	if cfg.Width > 200 && cfg.Height > 100 {
		flags.set(func(f *visualFlags) { f.large = true })
	}

	text, err := a.engine.ExtractText(ctx, data)
	if err != nil {
		return
	}
	text = strings.ToLower(text)
	for _, kw := range a.keywords {
		if strings.Contains(text, kw) {
			flags.set(func(f *visualFlags) { f.alertText = true })
			return
		}
	}
}

// set applies a mutation under the flag mutex.
func (f *visualFlags) set(fn func(*visualFlags)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

// decodeBase64Image decodes a data-URL payload and reads its
// dimensions.
func decodeBase64Image(src string) (image.Config, []byte, error) {
	payload := src[strings.LastIndex(src, "base64,")+len("base64,"):]
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return image.Config{}, nil, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return image.Config{}, nil, err
	}
	return cfg, data, nil
}
