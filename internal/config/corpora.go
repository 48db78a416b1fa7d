package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// KeywordCorpora holds the read-only keyword lists shared by all extraction
// calls. It is loaded once during process initialization and never mutated
// afterward, so concurrent extractions may read it without locking.
type KeywordCorpora struct {
	// PhishingKeywords are the phrases counted for keyword density.
	// Matching is case-insensitive substring matching over normalized text.
	PhishingKeywords []string `yaml:"phishing_keywords"`

	// CommonPhrases is the duplicate-phrase corpus: phrases that repeat
	// more than once on a page increment the duplicate_phrases count.
	CommonPhrases []string `yaml:"common_phrases"`

	// SuspiciousTLDs are registrable-domain suffixes that set the
	// suspicious_tld flag.
	SuspiciousTLDs []string `yaml:"suspicious_tlds"`

	// SuspiciousImageKeywords are phrases searched for in OCR output.
	SuspiciousImageKeywords []string `yaml:"suspicious_image_keywords"`

	// FormKeywords are the words that mark a form as suspicious when
	// they appear in its visible text.
	FormKeywords []string `yaml:"form_keywords"`
}

// DefaultCorpora returns the built-in keyword corpora. The phrase lists
// match the corpus the bundled classifier was trained against; changing
// them shifts keyword_density and duplicate_phrases distributions and
// requires retraining.
func DefaultCorpora() *KeywordCorpora {
	return &KeywordCorpora{
		PhishingKeywords: []string{
			"you have won a prize", "your account will be suspended", "immediate action required",
			"tax refund pending", "temporary disruption", "exclusive offer", "win", "good news",
			"you have been selected", "withdraw my cash", "bvn", "quick loan", "urgent", "gift",
			"verification", "payment", "discount", "your account has been hacked",
			"start your application", "enter your account number", "dear valued member",
			"free", "get my money now", "accept grants", "fast payment", "click to continue",
			"select below", "claim the grant funds",
		},
		CommonPhrases: []string{
			"verify your account", "click here", "act now", "limited time",
			"confirm your identity", "update your information", "sign in to continue",
		},
		SuspiciousTLDs: []string{".xyz", ".top", ".loan", ".gq"},
		SuspiciousImageKeywords: []string{
			"credit alert", "₦", "bvn", "debit", "payment", "congratulations",
		},
		FormKeywords: []string{"login", "verify", "secure", "account"},
	}
}

// LoadCorpora loads keyword corpora from a YAML file. Lists present in the
// file replace the corresponding defaults; absent lists keep their
// built-in values, so a file may override a single corpus.
func LoadCorpora(path string) (*KeywordCorpora, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided corpora path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCorporaNotFound
		}
		return nil, err
	}

	var file KeywordCorpora
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse corpora file: %w", err)
	}

	corpora := DefaultCorpora()
	if file.PhishingKeywords != nil {
		corpora.PhishingKeywords = file.PhishingKeywords
	}
	if file.CommonPhrases != nil {
		corpora.CommonPhrases = file.CommonPhrases
	}
	if file.SuspiciousTLDs != nil {
		corpora.SuspiciousTLDs = file.SuspiciousTLDs
	}
	if file.SuspiciousImageKeywords != nil {
		corpora.SuspiciousImageKeywords = file.SuspiciousImageKeywords
	}
	if file.FormKeywords != nil {
		corpora.FormKeywords = file.FormKeywords
	}
	return corpora, nil
}
