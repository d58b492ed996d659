// Package nlp provides the word tokenizer, stopword list and stemmer used to
// normalize message text, and the Normalize pipeline built on them
package nlp

import (
	"fmt"
	"os"

	"github.com/kljensen/snowball"
	"gopkg.in/yaml.v3"
)

// Provider is the tokenize/stopword/stem capability consumed by Normalize.
// Implementations must be deterministic and safe for concurrent use
type Provider interface {
	// WordTokenize splits text into word and punctuation tokens
	WordTokenize(text string) []string

	// IsStopword reports whether a lower-cased token is a stopword
	IsStopword(token string) bool

	// Stem reduces a lower-cased token to its root form
	Stem(token string) string
}

// English is a Provider backed by a Treebank-style tokenizer, an English
// stopword list and the Snowball English stemmer
type English struct {
	stopwords map[string]struct{}
}

// NewEnglish creates an English provider with the default stopword list
func NewEnglish() *English {
	return NewEnglishWithStopwords(DefaultStopwords)
}

// NewEnglishWithStopwords creates an English provider with a custom stopword list
func NewEnglishWithStopwords(words []string) *English {
	stopwords := make(map[string]struct{}, len(words))
	for _, w := range words {
		stopwords[w] = struct{}{}
	}
	return &English{stopwords: stopwords}
}

// WordTokenize implements Provider
func (e *English) WordTokenize(text string) []string {
	return WordTokenize(text)
}

// IsStopword implements Provider
func (e *English) IsStopword(token string) bool {
	_, ok := e.stopwords[token]
	return ok
}

// Stem implements Provider. Tokens the stemmer cannot handle are returned unchanged
func (e *English) Stem(token string) string {
	stemmed, err := snowball.Stem(token, "english", true)
	if err != nil || stemmed == "" {
		return token
	}
	return stemmed
}

// stoplistFile is the on-disk stopword override format
type stoplistFile struct {
	Terms []string `yaml:"terms"`
}

// LoadStopwords reads a YAML stoplist of the form `terms: [a, an, ...]`
func LoadStopwords(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stoplist: %w", err)
	}

	var sl stoplistFile
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("failed to parse stoplist: %w", err)
	}

	return sl.Terms, nil
}
