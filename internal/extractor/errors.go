package extractor

import "errors"

// ErrEmptyURL is returned when Extract is called without a URL. It is
// the only input validation error the engine produces; everything else
// degrades to defaults.
var ErrEmptyURL = errors.New("extractor: empty URL")
