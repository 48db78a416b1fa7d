package analyzer

import (
	"context"
	"math"

	"github.com/phishscan/phishscan/internal/htmldoc"
	"github.com/phishscan/phishscan/internal/model"
)

// Target is the read-only input shared by every analyzer for one page.
// Analyzers must not mutate it.
type Target struct {
	// URL is the page URL as given by the caller.
	URL string
	// Domain is the resolved domain breakdown of URL.
	Domain model.DomainInfo
	// RawHTML is the page markup as fetched or supplied.
	RawHTML string
	// Doc is the parsed document, never nil.
	Doc *htmldoc.Document
}

// Result holds the feature values one analyzer produced, keyed by schema
// field name, plus free-form annotations for the report (registrar name
// and similar non-numeric findings).
type Result struct {
	Values      map[string]float64
	Annotations map[string]string
}

// NewResult returns an empty Result ready for Set calls.
func NewResult() *Result {
	return &Result{
		Values:      make(map[string]float64),
		Annotations: make(map[string]string),
	}
}

// Set records a feature value.
func (r *Result) Set(name string, value float64) {
	r.Values[name] = value
}

// SetBool records a boolean feature as 0 or 1.
func (r *Result) SetBool(name string, value bool) {
	if value {
		r.Values[name] = 1
	} else {
		r.Values[name] = 0
	}
}

// Annotate records a non-numeric finding.
func (r *Result) Annotate(key, value string) {
	r.Annotations[key] = value
}

// Analyzer computes a group of related features for one page. An error
// return means the analyzer's whole feature group falls back to schema
// defaults; partial results are discarded.
type Analyzer interface {
	// Name identifies the analyzer in reports and failure lists.
	Name() string
	// Analyze inspects the target and returns its feature values.
	Analyze(ctx context.Context, t *Target) (*Result, error)
}

// round rounds x to the given number of decimal places.
func round(x float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(x*pow) / pow
}
