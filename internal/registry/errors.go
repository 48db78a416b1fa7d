package registry

import "errors"

var (
	// ErrEmptyDomain is returned when a lookup is requested for an
	// empty domain.
	ErrEmptyDomain = errors.New("registry: empty domain")
	// ErrLookupFailed is returned when the WHOIS query itself fails.
	ErrLookupFailed = errors.New("registry: whois lookup failed")
	// ErrNoCreationDate is returned when the WHOIS record carries no
	// parseable creation date.
	ErrNoCreationDate = errors.New("registry: whois record has no creation date")
)
