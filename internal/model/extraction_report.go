package model

import "time"

// ExtractionReport is the full result of one extraction call: the numeric
// FeatureRecord plus the non-numeric side data that callers (report writers,
// the dataset store) use but the classifier never sees.
type ExtractionReport struct {
	// URL is the requested URL.
	URL string `json:"url"`

	// Domain holds the resolved URL components.
	Domain DomainInfo `json:"domain"`

	// Record is the complete, fixed-schema feature vector.
	Record *FeatureRecord `json:"features"`

	// Registrar is the registrar name from the registration lookup.
	// Empty when the lookup failed. Deliberately kept out of Record:
	// the classifier schema is numeric only.
	Registrar string `json:"registrar,omitempty"`

	// DegradedFetch is true when no HTML content was available, meaning
	// all content-dependent features fell back to defaults. Callers
	// should surface a degraded-confidence note but still deliver a
	// prediction.
	DegradedFetch bool `json:"degraded_fetch"`

	// Analyzers lists the analyzers that ran.
	Analyzers []string `json:"analyzers,omitempty"`

	// Failures lists analyzers that fell back to defaults, with the
	// reason. These are informational; they never abort the call.
	Failures []AnalyzerFailure `json:"failures,omitempty"`

	// ExtractedAt is the wall-clock time of the extraction.
	ExtractedAt time.Time `json:"extracted_at"`

	// Elapsed is the total extraction duration.
	Elapsed time.Duration `json:"elapsed_ns"`
}

// AnalyzerFailure records one analyzer falling back to default values.
type AnalyzerFailure struct {
	// Analyzer is the name of the analyzer that failed.
	Analyzer string `json:"analyzer"`

	// Reason is the error message.
	Reason string `json:"reason"`
}

// Failed reports whether the named analyzer fell back to defaults.
func (r *ExtractionReport) Failed(analyzer string) bool {
	for _, f := range r.Failures {
		if f.Analyzer == analyzer {
			return true
		}
	}
	return false
}
