package analyzer

import (
	"context"
	"strings"

	"github.com/phishscan/phishscan/internal/config"
	"github.com/phishscan/phishscan/internal/model"
	"github.com/phishscan/phishscan/internal/vectorizer"
)

// Content scores the visible page text: phishing keyword density,
// repeated bait phrases, and the TF-IDF vector the classifier was
// trained on.
type Content struct {
	keywords []string
	phrases  []string
	model    *vectorizer.Model
}

// NewContent creates the content analyzer from the keyword corpora and
// a vectorizer model.
func NewContent(corpora *config.KeywordCorpora, vec *vectorizer.Model) *Content {
	return &Content{
		keywords: corpora.PhishingKeywords,
		phrases:  corpora.CommonPhrases,
		model:    vec,
	}
}

// Name implements Analyzer.
func (a *Content) Name() string { return "content" }

// Analyze implements Analyzer.
func (a *Content) Analyze(_ context.Context, t *Target) (*Result, error) {
	r := NewResult()
	text := t.Doc.Text

	words := t.Doc.WordCount()
	if words == 0 {
		words = 1
	}

	// Non-overlapping occurrence counts across the whole keyword list.
	var hits int
	for _, kw := range a.keywords {
		hits += strings.Count(text, strings.ToLower(kw))
	}
	r.Set(model.FieldKeywordDensity, round(float64(hits)/float64(words), 4))
	r.SetBool(model.FieldSuspiciousKeywordFound, hits > 0)

	var duplicates int
	for _, phrase := range a.phrases {
		if strings.Count(text, strings.ToLower(phrase)) > 1 {
			duplicates++
		}
	}
	r.Set(model.FieldDuplicatePhrases, float64(duplicates))

	for i, v := range a.model.Transform(text) {
		r.Set(model.VectorFieldName(i), round(v, 5))
	}
	return r, nil
}
