// Package log provides the application logger, built on the standard
// slog package.
//
// Extraction deals in whole HTML pages, OCR dumps, and WHOIS responses,
// any of which can run to megabytes. The TruncateHandler caps string
// attribute values before they reach the underlying handler so a debug
// log line never swallows the terminal.
//
// Usage:
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Debug("page fetched", "url", url, "body", html) // body is capped
package log
