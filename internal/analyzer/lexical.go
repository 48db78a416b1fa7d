package analyzer

import (
	"context"
	"math"
	"strings"

	"github.com/phishscan/phishscan/internal/config"
	"github.com/phishscan/phishscan/internal/model"
)

// Lexical computes URL shape features: length, dot count, scheme,
// suspicious TLD, and the Shannon entropy of the registrable domain.
// High-entropy domains suggest machine-generated registrations.
type Lexical struct {
	suspiciousTLDs []string
}

// NewLexical creates the lexical analyzer using the corpora's
// suspicious TLD list.
func NewLexical(corpora *config.KeywordCorpora) *Lexical {
	return &Lexical{suspiciousTLDs: corpora.SuspiciousTLDs}
}

// Name implements Analyzer.
func (a *Lexical) Name() string { return "lexical" }

// Analyze implements Analyzer. It never fails: every feature derives
// from strings already in hand.
func (a *Lexical) Analyze(_ context.Context, t *Target) (*Result, error) {
	r := NewResult()
	r.Set(model.FieldURLLength, float64(len(t.URL)))
	r.Set(model.FieldNumDots, float64(strings.Count(t.URL, ".")))
	r.SetBool(model.FieldHasHTTPS, strings.HasPrefix(t.URL, "https://"))
	r.SetBool(model.FieldSuspiciousTLD, a.hasSuspiciousTLD(t.Domain.Domain))
	r.Set(model.FieldDomainLength, float64(len(t.Domain.Domain)))
	r.Set(model.FieldDomainEntropy, round(entropy(t.Domain.Domain), 4))
	return r, nil
}

func (a *Lexical) hasSuspiciousTLD(domain string) bool {
	for _, tld := range a.suspiciousTLDs {
		if strings.HasSuffix(domain, tld) {
			return true
		}
	}
	return false
}

// entropy computes the Shannon entropy in bits of the character
// distribution of s. Empty input has zero entropy.
func entropy(s string) float64 {
	if s == "" {
		return 0
	}
	runes := []rune(s)
	counts := make(map[rune]int, len(runes))
	for _, r := range runes {
		counts[r]++
	}
	n := float64(len(runes))
	var h float64
	for _, c := range counts {
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h
}
