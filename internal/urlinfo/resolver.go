package urlinfo

import (
	"net/url"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"

	"github.com/phishscan/phishscan/internal/model"
)

// Resolve parses a raw URL into structured domain information.
// It never returns an error: anything that cannot be parsed leaves the
// corresponding fields empty. Scheme-less input such as "example.com/login"
// is retried with an http:// prefix so the host can still be recovered.
func Resolve(rawURL string) model.DomainInfo {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return model.DomainInfo{}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return model.DomainInfo{}
	}

	info := model.DomainInfo{
		Scheme: u.Scheme,
		Host:   u.Hostname(),
		Path:   u.Path,
	}

	// url.Parse treats scheme-less input as a bare path. Retry with a
	// scheme so "example.com/login" still resolves to a host.
	if info.Host == "" && !strings.Contains(rawURL, "://") {
		if retry, err := url.Parse("http://" + rawURL); err == nil {
			info.Host = retry.Hostname()
			info.Path = retry.Path
		}
	}
	if info.Host == "" {
		return info
	}

	info.Domain, info.Subdomain = splitRegistrable(info.Host)
	return info
}

// splitRegistrable computes the registrable domain (eTLD+1) and the
// subdomain prefix for a host. Unicode hosts are converted to their ASCII
// (punycode) form before the public-suffix computation. Hosts without a
// known public suffix (IP literals, localhost, bare TLDs) fall back to
// the host itself as the domain.
func splitRegistrable(host string) (domain, subdomain string) {
	host = strings.ToLower(strings.TrimSuffix(host, "."))

	lookup := host
	if ascii, err := idna.Lookup.ToASCII(host); err == nil && ascii != "" {
		lookup = ascii
	}

	etld1, err := publicsuffix.EffectiveTLDPlusOne(lookup)
	if err != nil {
		return host, ""
	}

	if lookup != etld1 && strings.HasSuffix(lookup, "."+etld1) {
		subdomain = strings.TrimSuffix(lookup, "."+etld1)
	}
	return etld1, subdomain
}
