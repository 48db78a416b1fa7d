package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phishscan/phishscan/internal/vectorizer"
)

// TestNewVectorizerCmd tests the vectorizer command creation.
func TestNewVectorizerCmd(t *testing.T) {
	t.Parallel()

	cmd := NewVectorizerCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "vectorizer" {
			t.Errorf("expected use 'vectorizer', got %q", cmd.Use)
		}
	})

	t.Run("has fit subcommand", func(t *testing.T) {
		t.Parallel()
		hasFit := false
		for _, sub := range cmd.Commands() {
			if sub.Use == "fit" {
				hasFit = true
			}
		}
		if !hasFit {
			t.Error("expected fit subcommand")
		}
	})
}

// TestNewVectorizerFitCmd tests the fit command flags.
func TestNewVectorizerFitCmd(t *testing.T) {
	t.Parallel()

	cmd := NewVectorizerFitCmd()

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"html-dir", "dim", "output"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %s flag", name)
			}
		}
	})

	t.Run("output defaults to the config directory model", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.DefValue != defaultVectorizerPath() {
			t.Errorf("output default = %q, want %q", flag.DefValue, defaultVectorizerPath())
		}
	})
}

// TestRunVectorizerFit trains a model from saved pages end to end and
// loads the artifact back.
func TestRunVectorizerFit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pages := map[string]string{
		"one.html": `<html><body><p>verify your account password now</p></body></html>`,
		"two.html": `<html><body><p>account suspended, verify password immediately</p></body></html>`,
	}
	for name, content := range pages {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
			t.Fatal(err)
		}
	}

	outPath := filepath.Join(t.TempDir(), "model.yaml")
	var buf bytes.Buffer
	cmd := NewVectorizerFitCmd()
	cmd.SetOut(&buf)
	for flag, value := range map[string]string{
		"html-dir": dir,
		"dim":      "4",
		"output":   outPath,
	} {
		if err := cmd.Flags().Set(flag, value); err != nil {
			t.Fatalf("failed to set %s: %v", flag, err)
		}
	}

	if err := runVectorizerFitCmd(cmd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "Trained 4-term vectorizer from 2 pages") {
		t.Errorf("unexpected output: %q", buf.String())
	}

	loaded, err := vectorizer.Load(outPath)
	if err != nil {
		t.Fatalf("failed to load trained model: %v", err)
	}
	if loaded.Dim() != 4 {
		t.Errorf("Dim() = %d, want 4", loaded.Dim())
	}
	if !loaded.Trained() {
		t.Error("expected loaded model to be trained")
	}

	// A shared term from the training pages must produce a nonzero
	// component.
	vec := loaded.Transform("please verify password")
	var sum float64
	for _, v := range vec {
		sum += v
	}
	if sum == 0 {
		t.Error("expected nonzero transform for in-vocabulary terms")
	}
}

// TestRunVectorizerFitValidation covers the flag error paths.
func TestRunVectorizerFitValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flags   map[string]string
		wantErr string
	}{
		{
			name:    "requires html-dir",
			flags:   map[string]string{},
			wantErr: "--html-dir is required",
		},
		{
			name: "rejects non-positive dim",
			flags: map[string]string{
				"html-dir": ".",
				"dim":      "0",
			},
			wantErr: "invalid dim",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := NewVectorizerFitCmd()
			for flag, value := range tt.flags {
				if err := cmd.Flags().Set(flag, value); err != nil {
					t.Fatalf("failed to set %s: %v", flag, err)
				}
			}

			err := runVectorizerFitCmd(cmd, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

// TestCollectDocuments verifies page discovery and text extraction.
func TestCollectDocuments(t *testing.T) {
	t.Parallel()

	t.Run("reads html pages in name order", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		files := map[string]string{
			"b.html":    `<p>second page</p>`,
			"a.htm":     `<p>first page</p>`,
			"notes.txt": `ignored`,
		}
		for name, content := range files {
			if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
				t.Fatal(err)
			}
		}

		docs, err := collectDocuments(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(docs) != 2 {
			t.Fatalf("got %d documents, want 2", len(docs))
		}
		if docs[0] != "first page" || docs[1] != "second page" {
			t.Errorf("docs = %q", docs)
		}
	})

	t.Run("empty directory is an error", func(t *testing.T) {
		t.Parallel()

		if _, err := collectDocuments(t.TempDir()); err == nil {
			t.Error("expected error for directory without pages")
		}
	})
}
