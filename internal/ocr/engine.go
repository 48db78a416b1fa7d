package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrTesseractNotFound is returned when the tesseract binary is not on
// PATH.
var ErrTesseractNotFound = errors.New("ocr: tesseract binary not found in PATH")

// Engine extracts text from encoded image bytes. Implementations must be
// safe for concurrent use.
type Engine interface {
	// ExtractText runs OCR on an encoded image (PNG, JPEG, GIF) and
	// returns the recognized text.
	ExtractText(ctx context.Context, img []byte) (string, error)
}

// TesseractEngine runs OCR through the tesseract command line tool,
// feeding the image on stdin and reading text from stdout.
type TesseractEngine struct {
	// binary is the resolved tesseract executable path.
	binary string
	// language is the tesseract language model, "eng" by default.
	language string
}

// TesseractOption configures a TesseractEngine.
type TesseractOption func(*TesseractEngine)

// WithLanguage sets the tesseract language model.
func WithLanguage(lang string) TesseractOption {
	return func(e *TesseractEngine) {
		e.language = lang
	}
}

// NewTesseractEngine locates the tesseract binary and returns an engine
// that uses it. It returns ErrTesseractNotFound when the binary is not
// installed.
func NewTesseractEngine(opts ...TesseractOption) (*TesseractEngine, error) {
	path, err := exec.LookPath("tesseract")
	if err != nil {
		return nil, ErrTesseractNotFound
	}
	e := &TesseractEngine{
		binary:   path,
		language: "eng",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// ExtractText implements Engine.
func (e *TesseractEngine) ExtractText(ctx context.Context, img []byte) (string, error) {
	// "stdin" and "stdout" make tesseract read the image from standard
	// input and print recognized text instead of writing a file.
	cmd := exec.CommandContext(ctx, e.binary, "stdin", "stdout", "-l", e.language)
	cmd.Stdin = bytes.NewReader(img)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("run tesseract: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

// NopEngine is an Engine that recognizes nothing. It stands in when no
// OCR backend is available.
type NopEngine struct{}

// ExtractText implements Engine, always returning empty text.
func (NopEngine) ExtractText(_ context.Context, _ []byte) (string, error) {
	return "", nil
}

// NewEngine returns a TesseractEngine when tesseract is installed and a
// NopEngine otherwise.
func NewEngine(opts ...TesseractOption) Engine {
	e, err := NewTesseractEngine(opts...)
	if err != nil {
		return NopEngine{}
	}
	return e
}
