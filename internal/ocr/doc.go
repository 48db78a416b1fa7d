// Package ocr extracts text from images so downstream analysis can spot
// alert banners rendered as pictures. The default engine shells out to
// the tesseract binary; a no-op engine stands in when tesseract is not
// installed so image analysis degrades instead of failing.
package ocr
