package urlinfo

import "testing"

// TestResolve tests URL resolution into domain components.
func TestResolve(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		rawURL    string
		scheme    string
		host      string
		path      string
		domain    string
		subdomain string
	}{
		{
			name:   "plain http URL",
			rawURL: "http://example.com/login",
			scheme: "http", host: "example.com", path: "/login",
			domain: "example.com",
		},
		{
			name:   "https with subdomain",
			rawURL: "https://secure.login.example.co.uk/verify",
			scheme: "https", host: "secure.login.example.co.uk", path: "/verify",
			domain: "example.co.uk", subdomain: "secure.login",
		},
		{
			name:   "suspicious tld",
			rawURL: "http://fake-test.xyz",
			scheme: "http", host: "fake-test.xyz",
			domain: "fake-test.xyz",
		},
		{
			name:   "scheme-less input recovers host",
			rawURL: "example.com/login",
			host:   "example.com", path: "/login",
			domain: "example.com",
		},
		{
			name:   "host without known suffix falls back to host",
			rawURL: "http://localhost/admin",
			scheme: "http", host: "localhost", path: "/admin",
			domain: "localhost",
		},
		{
			name:   "empty input",
			rawURL: "",
		},
		{
			name:   "malformed input yields empty fields",
			rawURL: "http://[::1:bad",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			info := Resolve(tc.rawURL)
			if info.Scheme != tc.scheme {
				t.Errorf("scheme: got %q, expected %q", info.Scheme, tc.scheme)
			}
			if info.Host != tc.host {
				t.Errorf("host: got %q, expected %q", info.Host, tc.host)
			}
			if info.Path != tc.path {
				t.Errorf("path: got %q, expected %q", info.Path, tc.path)
			}
			if info.Domain != tc.domain {
				t.Errorf("domain: got %q, expected %q", info.Domain, tc.domain)
			}
			if info.Subdomain != tc.subdomain {
				t.Errorf("subdomain: got %q, expected %q", info.Subdomain, tc.subdomain)
			}
		})
	}
}

// TestResolveNeverNil verifies malformed URLs never produce an error state,
// only empty strings.
func TestResolveNeverNil(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "%%%", "ht tp://x", "http://[::1:bad", "   "} {
		info := Resolve(raw)
		if info.Host != "" && info.Domain == "" {
			t.Errorf("Resolve(%q): host %q resolved without a domain fallback", raw, info.Host)
		}
	}
}
