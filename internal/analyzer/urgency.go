package analyzer

import (
	"context"
	"regexp"

	"github.com/phishscan/phishscan/internal/model"
)

// jsTimerPatterns match JavaScript countdown machinery in raw markup.
var jsTimerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)setTimeout\s*\(`),
	regexp.MustCompile(`(?i)setInterval\s*\(`),
	regexp.MustCompile(`(?i)new\s+Date\s*\(`),
	regexp.MustCompile(`(?i)Date\.now\s*\(`),
	regexp.MustCompile(`(?i)countdown\s*\(`),
	regexp.MustCompile(`(?i)\.getTime\s*\(`),
}

// htmlTimerPatterns match countdown widgets and urgency copy in markup.
var htmlTimerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)id=["']?(countdown|timer)["']?`),
	regexp.MustCompile(`(?i)class=["']?(countdown|timer)["']?`),
	regexp.MustCompile(`\d{1,2}:\d{2}(:\d{2})?`),
	regexp.MustCompile(`(?i)only\s+\d+\s+(seconds?|minutes?)\s+left`),
	regexp.MustCompile(`(?i)(hurry\s*up|expires\s+in)`),
}

// Urgency detects countdown timers and pressure copy. Phishing pages
// manufacture deadlines to rush victims past scrutiny.
type Urgency struct{}

// NewUrgency creates the urgency analyzer.
func NewUrgency() *Urgency { return &Urgency{} }

// Name implements Analyzer.
func (a *Urgency) Name() string { return "urgency" }

// Analyze implements Analyzer. It scans the raw markup, not the parsed
// text, because the timer machinery lives in scripts and attributes.
func (a *Urgency) Analyze(_ context.Context, t *Target) (*Result, error) {
	r := NewResult()
	js := matchesAny(jsTimerPatterns, t.RawHTML)
	html := matchesAny(htmlTimerPatterns, t.RawHTML)

	r.SetBool(model.FieldHasJSTimer, js)
	r.SetBool(model.FieldHasHTMLTimer, html)

	score := 0.0
	if js {
		score++
	}
	if html {
		score++
	}
	r.Set(model.FieldTimerUrgencyScore, score)
	return r, nil
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}
