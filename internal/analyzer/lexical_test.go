package analyzer

import (
	"context"
	"math"
	"testing"

	"github.com/phishscan/phishscan/internal/config"
	"github.com/phishscan/phishscan/internal/htmldoc"
	"github.com/phishscan/phishscan/internal/model"
	"github.com/phishscan/phishscan/internal/urlinfo"
)

// newTarget builds an analyzer target the way the extraction engine
// does: resolve the URL, parse the markup.
func newTarget(rawURL, rawHTML string) *Target {
	return &Target{
		URL:     rawURL,
		Domain:  urlinfo.Resolve(rawURL),
		RawHTML: rawHTML,
		Doc:     htmldoc.Parse(rawHTML),
	}
}

func TestEntropy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		s    string
		want float64
	}{
		{name: "empty", s: "", want: 0},
		{name: "single repeated character", s: "aaaa", want: 0},
		{name: "uniform four characters", s: "abcd", want: 2},
		{name: "two characters", s: "abab", want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := entropy(tt.s); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("entropy(%q) = %g, want %g", tt.s, got, tt.want)
			}
		})
	}
}

func TestEntropyPermutationInvariant(t *testing.T) {
	t.Parallel()

	// Entropy depends only on the character distribution, never on order.
	pairs := []struct {
		a, b string
	}{
		{"abcd", "dcba"},
		{"secure-login", "loginsecure-"},
		{"paypal", "lapyap"},
	}
	for _, p := range pairs {
		if got, want := entropy(p.a), entropy(p.b); math.Abs(got-want) > 1e-9 {
			t.Errorf("entropy(%q) = %g, entropy(%q) = %g, want equal", p.a, got, p.b, want)
		}
	}
}

func TestLexicalAnalyze(t *testing.T) {
	t.Parallel()

	a := NewLexical(config.DefaultCorpora())

	tests := []struct {
		name string
		url  string
		want map[string]float64
	}{
		{
			name: "suspicious tld",
			url:  "http://fake-test.xyz",
			want: map[string]float64{
				model.FieldURLLength:     20,
				model.FieldNumDots:       1,
				model.FieldHasHTTPS:      0,
				model.FieldSuspiciousTLD: 1,
				model.FieldDomainLength:  13,
			},
		},
		{
			name: "https ordinary domain",
			url:  "https://www.example.com/login",
			want: map[string]float64{
				model.FieldHasHTTPS:      1,
				model.FieldSuspiciousTLD: 0,
				model.FieldNumDots:       2,
				model.FieldDomainLength:  11,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := a.Analyze(context.Background(), newTarget(tt.url, ""))
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}
			for field, want := range tt.want {
				if got := res.Values[field]; got != want {
					t.Errorf("%s = %g, want %g", field, got, want)
				}
			}
		})
	}
}

func TestLexicalEntropyValues(t *testing.T) {
	t.Parallel()

	a := NewLexical(config.DefaultCorpora())

	// An empty domain has zero entropy.
	res, err := a.Analyze(context.Background(), newTarget("", ""))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got := res.Values[model.FieldDomainEntropy]; got != 0 {
		t.Errorf("entropy of empty domain = %g, want 0", got)
	}

	res, err = a.Analyze(context.Background(), newTarget("http://fake-test.xyz", ""))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got := res.Values[model.FieldDomainEntropy]; got <= 0 {
		t.Errorf("entropy of fake-test.xyz = %g, want > 0", got)
	}
}
