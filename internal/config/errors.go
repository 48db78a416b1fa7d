package config

import "errors"

// Configuration validation errors returned by Config.Validate().
// Package-level sentinel errors allow callers to use errors.Is() while
// still providing human-readable messages.
var (
	// ErrInvalidTimeout is returned when any network timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxBodySize is returned when a body size limit is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidConcurrency is returned when the image concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid image concurrency: must be positive")

	// ErrInvalidWorkers is returned when the dataset worker count is not positive.
	ErrInvalidWorkers = errors.New("invalid worker count: must be positive")

	// ErrInvalidRateLimit is returned when the request rate is not positive.
	ErrInvalidRateLimit = errors.New("invalid request rate: must be positive")

	// ErrCorporaNotFound is returned when an explicitly specified corpora
	// file does not exist.
	ErrCorporaNotFound = errors.New("corpora file not found")
)
