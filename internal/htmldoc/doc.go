// Package htmldoc parses raw HTML into the shared document form that
// analyzers consume. Parsing is fault tolerant: malformed markup yields a
// best-effort tree rather than an error, matching how browsers treat the
// same input.
package htmldoc
