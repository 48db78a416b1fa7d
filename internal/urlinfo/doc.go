// Package urlinfo resolves a raw URL string into its structured domain
// components: scheme, host, path, registrable domain, and subdomain.
// Resolution fails softly: a malformed URL yields empty fields, never an
// error, so the rest of the extraction pipeline can run against whatever
// could be parsed.
package urlinfo
