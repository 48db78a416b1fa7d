package report

import (
	"strings"

	"github.com/phishscan/phishscan/internal/model"
)

// Thresholds above which a feature value is worth calling out to a
// human reader. They mirror the cutoffs used when the feature set was
// tuned against labeled pages.
const (
	entropyThreshold        = 4.0
	keywordDensityThreshold = 0.02
	mismatchedThreshold     = 0.3
	linkDensityThreshold    = 0.4
	externalLinkThreshold   = 0.5
	lowContentThreshold     = 0.1
)

// Reasons returns human-readable explanations for the suspicious
// signals present in the report, in a stable order. An empty slice
// means no signal crossed its threshold.
func Reasons(report *model.ExtractionReport) []string {
	if report == nil || report.Record == nil {
		return nil
	}
	rec := report.Record

	var reasons []string
	add := func(cond bool, msg string) {
		if cond {
			reasons = append(reasons, msg)
		}
	}

	add(rec.Get(model.FieldSuspiciousKeywordFound) > 0, "Suspicious keywords present")
	add(rec.Get(model.FieldSuspiciousTLD) > 0, "Domain uses a TLD common in phishing campaigns")
	add(rec.Get(model.FieldDomainEntropy) > entropyThreshold, "Domain name looks randomly generated")
	add(rec.Get(model.FieldNumForms) > 0, "Page contains input forms")
	add(rec.Get(model.FieldHasPasswordField) > 0, "Page requests a password")
	add(rec.Get(model.FieldKeywordDensity) > keywordDensityThreshold, "High density of pressure keywords")
	add(rec.Get(model.FieldDuplicatePhrases) > 1, "Repeated scam phrases detected")
	add(rec.Get(model.FieldMismatchedAnchorRatio) > mismatchedThreshold, "Link text does not match link destinations")
	add(rec.Get(model.FieldLinkDensity) > linkDensityThreshold, "Unusually link-heavy page")
	add(rec.Get(model.FieldExternalLinkRatio) > externalLinkThreshold, "Most links point off-domain")
	add(vectorSum(rec) < lowContentThreshold, "Low informational content")
	add(rec.Get(model.FieldHasJSTimer) > 0 || rec.Get(model.FieldHasHTMLTimer) > 0, "Urgent countdown timer detected")
	add(rec.Get(model.FieldLargeSuspiciousImage) > 0, "Large banner image with alert-style dimensions")
	add(rec.Get(model.FieldOCRAlertTextDetected) > 0, "Alert text found inside an image")
	add(rec.Get(model.FieldAlertImageNearFormOrLink) > 0, "Image placed next to a form or link")
	add(rec.Get(model.FieldIsNewDomain) > 0, "Domain was registered recently")

	return reasons
}

// vectorSum totals the text-vector components of the record. A sum
// near zero means the page text shares almost no terms with the
// training vocabulary.
func vectorSum(rec *model.FeatureRecord) float64 {
	schema := rec.Schema()
	var sum float64
	for _, name := range schema.Names() {
		if strings.HasPrefix(name, "tfidf_") {
			sum += rec.Get(name)
		}
	}
	return sum
}
