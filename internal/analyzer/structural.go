package analyzer

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/phishscan/phishscan/internal/config"
	"github.com/phishscan/phishscan/internal/model"
)

// Structural counts forms, inputs, and anchors and derives the link
// ratios that separate credential-harvesting pages from ordinary ones.
type Structural struct {
	formKeywords []string
}

// NewStructural creates the structural analyzer using the corpora's
// form keyword list.
func NewStructural(corpora *config.KeywordCorpora) *Structural {
	return &Structural{formKeywords: corpora.FormKeywords}
}

// Name implements Analyzer.
func (a *Structural) Name() string { return "structural" }

// Analyze implements Analyzer.
func (a *Structural) Analyze(_ context.Context, t *Target) (*Result, error) {
	r := NewResult()
	doc := t.Doc.Query

	inputs := doc.Find("input")
	forms := doc.Find("form")

	r.Set(model.FieldNumForms, float64(forms.Length()))
	r.Set(model.FieldNumInputs, float64(inputs.Length()))

	hasPassword := false
	inputs.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if typ, _ := s.Attr("type"); strings.Contains(typ, "password") {
			hasPassword = true
			return false
		}
		return true
	})
	r.SetBool(model.FieldHasPasswordField, hasPassword)

	formSuspicious := false
	forms.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.ToLower(s.Text())
		for _, kw := range a.formKeywords {
			if strings.Contains(text, kw) {
				formSuspicious = true
				return false
			}
		}
		return true
	})
	r.SetBool(model.FieldFormWithSuspiciousWords, formSuspicious)

	a.anchorRatios(r, t)
	return r, nil
}

// anchorRatios computes link density and the external and mismatched
// anchor ratios. Anchors without an href, or with an empty one, count
// toward the total but toward neither numerator.
func (a *Structural) anchorRatios(r *Result, t *Target) {
	anchors := t.Doc.Query.Find("a")
	total := anchors.Length()

	words := t.Doc.WordCount()
	if words == 0 {
		words = 1
	}
	r.Set(model.FieldLinkDensity, round(float64(total)/float64(words), 4))

	if total == 0 {
		r.Set(model.FieldExternalLinkRatio, 0)
		r.Set(model.FieldMismatchedAnchorRatio, 0)
		return
	}

	var external, mismatched int
	domain := t.Domain.Domain
	anchors.Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		if !strings.Contains(href, domain) {
			external++
		}
		// An anchor whose visible text does not appear in its own href
		// may be masking the real destination. Empty text trivially
		// matches every href.
		text := strings.ToLower(strings.TrimSpace(s.Text()))
		if !strings.Contains(strings.ToLower(href), text) {
			mismatched++
		}
	})
	r.Set(model.FieldExternalLinkRatio, round(float64(external)/float64(total), 4))
	r.Set(model.FieldMismatchedAnchorRatio, round(float64(mismatched)/float64(total), 4))
}
