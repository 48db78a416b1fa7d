package dataset

import "errors"

var (
	// ErrNoInput is returned when a build is started with no URLs or
	// pages.
	ErrNoInput = errors.New("dataset: no input URLs or pages")
	// ErrStoreClosed is returned when a store operation runs after
	// Close.
	ErrStoreClosed = errors.New("dataset: store is closed")
)
