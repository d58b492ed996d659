package nlp

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// contractions are split off the end of a word, longest first
var contractions = []string{"n't", "'ll", "'re", "'ve", "'s", "'m", "'d"}

// WordTokenize splits text into tokens following Penn Treebank conventions:
// punctuation is separated from words, commas and colons stay inside numbers
// ("1,000", "10:30"), and English contractions are split ("don't" -> "do", "n't").
// Hyphens, periods and slashes inside a word are kept
func WordTokenize(text string) []string {
	var tokens []string
	for _, chunk := range strings.Fields(text) {
		tokens = tokenizeChunk(tokens, chunk)
	}
	return tokens
}

func tokenizeChunk(tokens []string, chunk string) []string {
	runes := []rune(chunk)

	start := 0
	for start < len(runes) && !isWordRune(runes[start]) {
		tokens = append(tokens, string(runes[start]))
		start++
	}

	end := len(runes)
	for end > start && !isWordRune(runes[end-1]) {
		end--
	}

	var piece []rune
	flush := func() {
		if len(piece) > 0 {
			tokens = appendContraction(tokens, string(piece))
			piece = piece[:0]
		}
	}

	for i := start; i < end; i++ {
		r := runes[i]
		if isSplitRune(r) || ((r == ',' || r == ':') && !(i+1 < end && unicode.IsDigit(runes[i+1]))) {
			flush()
			tokens = append(tokens, string(r))
			continue
		}
		piece = append(piece, r)
	}
	flush()

	for i := end; i < len(runes); i++ {
		tokens = append(tokens, string(runes[i]))
	}

	return tokens
}

func appendContraction(tokens []string, word string) []string {
	for _, c := range contractions {
		if !strings.HasSuffix(word, c) || len(word) == len(c) {
			continue
		}
		stem := word[:len(word)-len(c)]
		if last, _ := utf8.DecodeLastRuneInString(stem); last == '\'' {
			continue
		}
		return append(tokens, stem, c)
	}
	return append(tokens, word)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isSplitRune(r rune) bool {
	switch r {
	case ';', '@', '#', '$', '%', '&', '?', '!', '(', ')', '[', ']', '{', '}', '<', '>', '"':
		return true
	}
	return false
}
