package model

// DomainInfo holds the structured components of a parsed URL.
// All fields are plain strings; a malformed URL produces empty fields
// rather than an error, so downstream analyzers never see nil.
type DomainInfo struct {
	// Scheme is the URL scheme (http, https), empty when unparseable.
	Scheme string `json:"scheme"`

	// Host is the full hostname including subdomains.
	Host string `json:"host"`

	// Path is the URL path component.
	Path string `json:"path"`

	// Domain is the registrable domain (eTLD+1), e.g. "example.co.uk".
	// Falls back to the bare host when the public suffix is unknown.
	Domain string `json:"domain"`

	// Subdomain is everything left of the registrable domain,
	// e.g. "login.mail" for "login.mail.example.com".
	Subdomain string `json:"subdomain"`
}

// IsZero reports whether no URL component could be resolved.
func (d DomainInfo) IsZero() bool {
	return d.Scheme == "" && d.Host == "" && d.Path == "" && d.Domain == "" && d.Subdomain == ""
}
