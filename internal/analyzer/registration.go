package analyzer

import (
	"context"
	"time"

	"github.com/phishscan/phishscan/internal/config"
	"github.com/phishscan/phishscan/internal/model"
	"github.com/phishscan/phishscan/internal/registry"
)

// Registration derives domain age features from WHOIS data. A domain
// registered days ago is far more likely to be a phishing staging ground
// than one with years of history.
type Registration struct {
	lookup registry.Lookup
	// now is injectable for deterministic age computation in tests.
	now func() time.Time
}

// RegistrationOption configures a Registration analyzer.
type RegistrationOption func(*Registration)

// WithRegistryLookup sets the WHOIS lookup. A nil lookup makes the
// analyzer report defaults.
func WithRegistryLookup(l registry.Lookup) RegistrationOption {
	return func(a *Registration) {
		a.lookup = l
	}
}

// WithNow overrides the clock used for age computation.
func WithNow(now func() time.Time) RegistrationOption {
	return func(a *Registration) {
		a.now = now
	}
}

// NewRegistration creates the registration analyzer.
func NewRegistration(opts ...RegistrationOption) *Registration {
	a := &Registration{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name implements Analyzer.
func (a *Registration) Name() string { return "registration" }

// Analyze implements Analyzer. Lookup failures surface as an error so
// the aggregator applies the zero defaults; the extraction itself keeps
// going.
func (a *Registration) Analyze(ctx context.Context, t *Target) (*Result, error) {
	if a.lookup == nil {
		return NewResult(), nil
	}

	reg, err := a.lookup.Lookup(ctx, t.Domain.Domain)
	if err != nil {
		return nil, err
	}

	r := NewResult()
	ageDays := int(a.now().UTC().Sub(reg.Created).Hours() / 24)
	r.Set(model.FieldDomainAgeDays, float64(ageDays))
	r.SetBool(model.FieldIsNewDomain, ageDays < config.NewDomainAgeDays)
	if reg.Registrar != "" {
		r.Annotate("registrar", reg.Registrar)
	}
	return r, nil
}
