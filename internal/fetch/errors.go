package fetch

import "errors"

var (
	// ErrEmptyURL is returned when an empty URL is requested.
	ErrEmptyURL = errors.New("fetch: empty URL")
	// ErrHTTPStatus is returned when the server answers with a non-2xx
	// status code.
	ErrHTTPStatus = errors.New("fetch: unexpected HTTP status")
	// ErrBodyTooLarge is returned when a response body exceeds the
	// configured size limit.
	ErrBodyTooLarge = errors.New("fetch: response body exceeds size limit")
	// ErrNotAnImage is returned when an image URL serves a body that no
	// registered image format can decode.
	ErrNotAnImage = errors.New("fetch: response is not a decodable image")
)
