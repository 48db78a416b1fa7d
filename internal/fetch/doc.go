// Package fetch retrieves page HTML and referenced images over HTTP.
// The plain client decodes non-UTF-8 responses using the charset declared
// in the Content-Type header, and the headless client renders
// JavaScript-built pages through a browser when static fetching comes
// back empty.
package fetch
