package extractor

import (
	"github.com/phishscan/phishscan/internal/analyzer"
	"github.com/phishscan/phishscan/internal/model"
)

// aggregator folds per-analyzer outcomes into one schema-complete
// record. The record starts zero-filled, so a failed or skipped analyzer
// contributes its defaults simply by never writing.
type aggregator struct {
	record      *model.FeatureRecord
	ran         []string
	failures    []model.AnalyzerFailure
	annotations map[string]string
}

func newAggregator(schema *model.Schema) *aggregator {
	return &aggregator{
		record:      schema.NewRecord(),
		annotations: make(map[string]string),
	}
}

// apply merges one successful analyzer result. Values for names outside
// the schema are dropped.
func (a *aggregator) apply(name string, res *analyzer.Result) {
	a.ran = append(a.ran, name)
	if res == nil {
		return
	}
	for field, v := range res.Values {
		a.record.Set(field, v)
	}
	for k, v := range res.Annotations {
		a.annotations[k] = v
	}
}

// fail records an analyzer falling back to defaults.
func (a *aggregator) fail(name string, err error) {
	a.ran = append(a.ran, name)
	a.failures = append(a.failures, model.AnalyzerFailure{
		Analyzer: name,
		Reason:   err.Error(),
	})
}

// report assembles the aggregation into an ExtractionReport. The caller
// fills in the URL, timing, and fetch fields.
func (a *aggregator) report() *model.ExtractionReport {
	return &model.ExtractionReport{
		Record:    a.record,
		Registrar: a.annotations["registrar"],
		Analyzers: a.ran,
		Failures:  a.failures,
	}
}
