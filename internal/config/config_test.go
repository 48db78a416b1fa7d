package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfig tests that defaults are sensible.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if cfg.FetchTimeout != DefaultFetchTimeout {
		t.Errorf("expected %v, got %v", DefaultFetchTimeout, cfg.FetchTimeout)
	}
	if cfg.ImageConcurrency != DefaultImageConcurrency {
		t.Errorf("expected %d, got %d", DefaultImageConcurrency, cfg.ImageConcurrency)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

// TestConfigValidate tests validation error cases.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		mutate   func(*Config)
		expected error
	}{
		{"zero fetch timeout", func(c *Config) { c.FetchTimeout = 0 }, ErrInvalidTimeout},
		{"negative image timeout", func(c *Config) { c.ImageTimeout = -time.Second }, ErrInvalidTimeout},
		{"negative body size", func(c *Config) { c.MaxBodySize = -1 }, ErrInvalidMaxBodySize},
		{"zero image concurrency", func(c *Config) { c.ImageConcurrency = 0 }, ErrInvalidConcurrency},
		{"zero workers", func(c *Config) { c.Workers = 0 }, ErrInvalidWorkers},
		{"zero rate", func(c *Config) { c.RequestsPerSecond = 0 }, ErrInvalidRateLimit},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, err)
			}
		})
	}
}

// TestDefaultCorpora tests the built-in keyword lists.
func TestDefaultCorpora(t *testing.T) {
	t.Parallel()

	corpora := DefaultCorpora()

	if len(corpora.PhishingKeywords) == 0 {
		t.Error("expected non-empty phishing keyword list")
	}
	if len(corpora.SuspiciousTLDs) != 4 {
		t.Errorf("expected 4 suspicious TLDs, got %d", len(corpora.SuspiciousTLDs))
	}
	for _, tld := range corpora.SuspiciousTLDs {
		if tld[0] != '.' {
			t.Errorf("TLD %q should start with a dot", tld)
		}
	}
	if len(corpora.FormKeywords) != 4 {
		t.Errorf("expected 4 form keywords, got %d", len(corpora.FormKeywords))
	}
}

// TestLoadCorpora tests YAML overrides.
func TestLoadCorpora(t *testing.T) {
	t.Parallel()

	t.Run("missing file returns ErrCorporaNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadCorpora(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrCorporaNotFound) {
			t.Errorf("expected ErrCorporaNotFound, got %v", err)
		}
	})

	t.Run("partial override keeps other defaults", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "corpora.yaml")
		content := "suspicious_tlds:\n  - .evil\n"
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		corpora, err := LoadCorpora(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(corpora.SuspiciousTLDs) != 1 || corpora.SuspiciousTLDs[0] != ".evil" {
			t.Errorf("expected override list, got %v", corpora.SuspiciousTLDs)
		}
		if len(corpora.PhishingKeywords) == 0 {
			t.Error("expected default phishing keywords to survive override")
		}
	})

	t.Run("invalid yaml returns error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte(":\t not yaml ["), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadCorpora(path); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}
