package registry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
)

// Registration is the subset of a WHOIS record the feature schema needs.
type Registration struct {
	// Created is when the domain was first registered.
	Created time.Time
	// Registrar is the registrar name, empty when the record omits it.
	Registrar string
}

// Lookup resolves registration data for a registrable domain.
// Implementations must be safe for concurrent use.
type Lookup interface {
	Lookup(ctx context.Context, domain string) (*Registration, error)
}

// WhoisLookup queries WHOIS servers directly.
type WhoisLookup struct {
	timeout time.Duration
}

// WhoisOption configures a WhoisLookup.
type WhoisOption func(*WhoisLookup)

// WithWhoisTimeout sets the per-query timeout.
func WithWhoisTimeout(timeout time.Duration) WhoisOption {
	return func(l *WhoisLookup) {
		l.timeout = timeout
	}
}

// NewWhoisLookup creates a WHOIS-backed registration lookup.
func NewWhoisLookup(opts ...WhoisOption) *WhoisLookup {
	l := &WhoisLookup{
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// creationDateLayouts are the date formats WHOIS servers answer with.
// Servers disagree wildly, so parsing tries each in order.
var creationDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02",
	"January 2 2006",
	"2006/01/02",
}

// Lookup implements Lookup over WHOIS.
func (l *WhoisLookup) Lookup(ctx context.Context, domain string) (*Registration, error) {
	domain = strings.TrimSpace(strings.ToLower(domain))
	if domain == "" {
		return nil, ErrEmptyDomain
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	type result struct {
		reg *Registration
		err error
	}
	ch := make(chan result, 1)

	go func() {
		// The whois libraries parse untrusted registry responses;
		// contain any panic to this query.
		defer func() {
			if r := recover(); r != nil {
				ch <- result{err: fmt.Errorf("%w: panic: %v", ErrLookupFailed, r)}
			}
		}()
		reg, err := l.query(domain)
		ch <- result{reg: reg, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.reg, res.err
	}
}

// query performs the blocking WHOIS request and parses the response.
func (l *WhoisLookup) query(domain string) (*Registration, error) {
	raw, err := whois.Whois(domain)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLookupFailed, domain, err)
	}

	parsed, err := whoisparser.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLookupFailed, domain, err)
	}

	reg := &Registration{}
	if parsed.Registrar != nil {
		reg.Registrar = parsed.Registrar.Name
	}
	if parsed.Domain == nil || parsed.Domain.CreatedDate == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoCreationDate, domain)
	}
	created, err := parseCreationDate(parsed.Domain.CreatedDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoCreationDate, domain, err)
	}
	reg.Created = created
	return reg, nil
}

// parseCreationDate tries the known WHOIS date layouts.
func parseCreationDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range creationDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}
