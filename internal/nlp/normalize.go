package nlp

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalized is the stemmed, stopword-free form of a message
type Normalized struct {
	// Text is Tokens joined by single spaces
	Text string `json:"normalized_text"`
	// Tokens keeps original occurrence order and duplicates
	Tokens []string `json:"tokens"`
}

// Normalize lower-cases raw, tokenizes it, keeps purely alphanumeric tokens,
// drops stopwords and stems what is left. Empty or token-free input yields an
// empty result
func Normalize(raw string, p Provider) Normalized {
	lowered := cases.Lower(language.English).String(raw)

	words := p.WordTokenize(lowered)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if !isAlnum(w) || p.IsStopword(w) {
			continue
		}
		tokens = append(tokens, p.Stem(w))
	}

	return Normalized{
		Text:   strings.Join(tokens, " "),
		Tokens: tokens,
	}
}

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
