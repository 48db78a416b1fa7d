package ocr

import (
	"context"
	"errors"
	"os/exec"
	"testing"
)

func TestNopEngine(t *testing.T) {
	t.Parallel()

	got, err := NopEngine{}.ExtractText(context.Background(), []byte("not an image"))
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if got != "" {
		t.Errorf("ExtractText() = %q, want empty", got)
	}
}

func TestNewTesseractEngine(t *testing.T) {
	t.Parallel()

	e, err := NewTesseractEngine()
	if _, lookErr := exec.LookPath("tesseract"); lookErr != nil {
		if !errors.Is(err, ErrTesseractNotFound) {
			t.Fatalf("NewTesseractEngine() error = %v, want %v", err, ErrTesseractNotFound)
		}
		return
	}
	if err != nil {
		t.Fatalf("NewTesseractEngine() error = %v", err)
	}
	if e.language != "eng" {
		t.Errorf("language = %q, want eng", e.language)
	}
}

func TestWithLanguage(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("tesseract"); err != nil {
		t.Skip("tesseract not installed")
	}
	e, err := NewTesseractEngine(WithLanguage("deu"))
	if err != nil {
		t.Fatalf("NewTesseractEngine() error = %v", err)
	}
	if e.language != "deu" {
		t.Errorf("language = %q, want deu", e.language)
	}
}

func TestNewEngineFallsBack(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	if e == nil {
		t.Fatal("NewEngine() returned nil")
	}
	if _, lookErr := exec.LookPath("tesseract"); lookErr != nil {
		if _, ok := e.(NopEngine); !ok {
			t.Errorf("NewEngine() = %T, want NopEngine without tesseract", e)
		}
	}
}
