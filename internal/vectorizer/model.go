package vectorizer

import (
	"fmt"
	"math"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// tokenPattern matches word tokens of two or more characters after
// lower-casing, the convention the training corpus was tokenized with.
var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// Model is a TF-IDF vectorizer over unigrams and bigrams with a fixed
// output dimension. The zero value is not usable; construct one with
// NewDefault, Fit, or Load.
type Model struct {
	dim        int
	vocabulary map[string]int
	idf        []float64
}

// modelFile is the on-disk YAML form of a trained model.
type modelFile struct {
	Dim        int            `yaml:"dim"`
	Vocabulary map[string]int `yaml:"vocabulary"`
	IDF        []float64      `yaml:"idf"`
}

// NewDefault returns an untrained model of the given dimension. Its
// Transform always produces the zero vector.
func NewDefault(dim int) *Model {
	if dim < 0 {
		dim = 0
	}
	return &Model{dim: dim}
}

// Dim reports the length of vectors produced by Transform.
func (m *Model) Dim() int { return m.dim }

// Trained reports whether the model carries a fitted vocabulary.
func (m *Model) Trained() bool { return len(m.vocabulary) > 0 }

// Fit trains the model on a document corpus, keeping the dim most
// frequent terms. Term frequency ties break alphabetically and the final
// vocabulary is index-ordered alphabetically.
func (m *Model) Fit(docs []string) error {
	if len(docs) == 0 {
		return ErrEmptyCorpus
	}
	totals := make(map[string]int)
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, tok := range tokenize(doc) {
			totals[tok]++
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}

	terms := make([]string, 0, len(totals))
	for t := range totals {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if totals[terms[i]] != totals[terms[j]] {
			return totals[terms[i]] > totals[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if m.dim > 0 && len(terms) > m.dim {
		terms = terms[:m.dim]
	}
	sort.Strings(terms)

	n := float64(len(docs))
	m.vocabulary = make(map[string]int, len(terms))
	m.idf = make([]float64, len(terms))
	for i, t := range terms {
		m.vocabulary[t] = i
		m.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}
	return nil
}

// Transform converts text into a TF-IDF vector of length Dim,
// l2-normalized. An untrained model or text with no vocabulary hits
// yields the zero vector.
func (m *Model) Transform(text string) []float64 {
	vec := make([]float64, m.dim)
	if !m.Trained() {
		return vec
	}
	for _, tok := range tokenize(text) {
		if i, ok := m.vocabulary[tok]; ok && i < m.dim {
			vec[i] += m.idf[i]
		}
	}
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// Save writes the model to path as YAML.
func (m *Model) Save(path string) error {
	data, err := yaml.Marshal(modelFile{
		Dim:        m.dim,
		Vocabulary: m.vocabulary,
		IDF:        m.idf,
	})
	if err != nil {
		return fmt.Errorf("marshal vectorizer model: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write vectorizer model: %w", err)
	}
	return nil
}

// Load reads a model from a YAML file written by Save.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
		}
		return nil, fmt.Errorf("read vectorizer model: %w", err)
	}
	var mf modelFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	if mf.Dim < 0 || len(mf.Vocabulary) != len(mf.IDF) {
		return nil, fmt.Errorf("%w: vocabulary size %d does not match idf size %d",
			ErrInvalidModel, len(mf.Vocabulary), len(mf.IDF))
	}
	for term, i := range mf.Vocabulary {
		if i < 0 || i >= len(mf.IDF) {
			return nil, fmt.Errorf("%w: term %q has out-of-range index %d", ErrInvalidModel, term, i)
		}
	}
	return &Model{dim: mf.Dim, vocabulary: mf.Vocabulary, idf: mf.IDF}, nil
}

// tokenize lower-cases text and produces unigram plus bigram tokens.
func tokenize(text string) []string {
	words := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(words)*2)
	tokens = append(tokens, words...)
	for i := 0; i+1 < len(words); i++ {
		tokens = append(tokens, words[i]+" "+words[i+1])
	}
	return tokens
}
