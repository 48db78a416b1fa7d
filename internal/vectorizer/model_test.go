package vectorizer

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNewDefaultTransformZeroVector(t *testing.T) {
	t.Parallel()

	m := NewDefault(5)
	if m.Trained() {
		t.Error("NewDefault() model reports trained")
	}
	got := m.Transform("verify your account now")
	want := []float64{0, 0, 0, 0, 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Transform() = %v, want %v", got, want)
	}
}

func TestModelDim(t *testing.T) {
	t.Parallel()

	if got := NewDefault(20).Dim(); got != 20 {
		t.Errorf("Dim() = %d, want 20", got)
	}
	if got := NewDefault(-3).Dim(); got != 0 {
		t.Errorf("Dim() with negative input = %d, want 0", got)
	}
}

func TestFitEmptyCorpus(t *testing.T) {
	t.Parallel()

	if err := NewDefault(5).Fit(nil); err != ErrEmptyCorpus {
		t.Errorf("Fit(nil) error = %v, want %v", err, ErrEmptyCorpus)
	}
}

func TestFitAndTransform(t *testing.T) {
	t.Parallel()

	m := NewDefault(4)
	err := m.Fit([]string{
		"verify account verify account",
		"verify password",
		"login page",
	})
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if !m.Trained() {
		t.Fatal("model not trained after Fit")
	}

	vec := m.Transform("verify account")
	if len(vec) != 4 {
		t.Fatalf("Transform() length = %d, want 4", len(vec))
	}
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if math.Abs(math.Sqrt(norm)-1) > 1e-9 {
		t.Errorf("Transform() norm = %g, want 1", math.Sqrt(norm))
	}

	// Text with no vocabulary hits maps to the zero vector.
	zero := m.Transform("completely unrelated words here")
	for i, v := range zero {
		if v != 0 {
			t.Errorf("Transform() unseen text index %d = %g, want 0", i, v)
		}
	}
}

func TestFitKeepsMostFrequentTerms(t *testing.T) {
	t.Parallel()

	m := NewDefault(1)
	err := m.Fit([]string{
		"alpha alpha alpha beta",
		"alpha gamma",
	})
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if _, ok := m.vocabulary["alpha"]; !ok {
		t.Errorf("vocabulary = %v, want it to keep the most frequent term alpha", m.vocabulary)
	}
	if len(m.vocabulary) != 1 {
		t.Errorf("vocabulary size = %d, want 1", len(m.vocabulary))
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "unigrams and bigrams",
			text: "Verify Your Account",
			want: []string{"verify", "your", "account", "verify your", "your account"},
		},
		{
			name: "single character words dropped",
			text: "a verify b account",
			want: []string{"verify", "account", "verify account"},
		},
		{
			name: "empty",
			text: "",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tokenize(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Parallel()

	m := NewDefault(3)
	if err := m.Fit([]string{"verify account", "verify password", "reset password"}); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "vectorizer.yml")
	if err := m.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Dim() != m.Dim() {
		t.Errorf("loaded Dim() = %d, want %d", loaded.Dim(), m.Dim())
	}
	text := "verify your password"
	if got, want := loaded.Transform(text), m.Transform(text); !reflect.DeepEqual(got, want) {
		t.Errorf("loaded Transform() = %v, want %v", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err == nil {
		t.Fatal("Load() expected error for missing file")
	}
}

func TestLoadInvalidModel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")
	writeFile(t, path, "dim: 2\nvocabulary:\n  verify: 0\nidf: [1.0, 2.0, 3.0]\n")
	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for mismatched vocabulary and idf sizes")
	}

	garbled := filepath.Join(dir, "garbled.yml")
	writeFile(t, garbled, "{not yaml")
	if _, err := Load(garbled); err == nil {
		t.Error("Load() expected error for malformed yaml")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}
