package features

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mikey/spam-insight/internal/lexicon"
	"github.com/mikey/spam-insight/internal/patterns"
)

// Precision is the number of decimals float features are rounded to
const Precision = 4

const specialChars = "$@#%&*"

var (
	wordPattern    = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	allCapsPattern = regexp.MustCompile(`^[A-Z]{2,}$`)
	htmlPattern    = regexp.MustCompile(`<[A-Za-z][^>]*>`)
	hiddenPattern  = regexp.MustCompile(`(?i)display\s*:\s*none|colou?r\s*[:=]\s*["']?#(?:fff|ffffff)(?:$|[^\p{L}\p{N}_])`)

	imperativeVerbs = lexicon.NewWordSet(patterns.ImperativeVerbs...)
	urgencyWords    = lexicon.NewWordSet(patterns.UrgencyWords...)
)

// Extract computes the feature vector for raw. tokens are the normalized
// tokens of raw. It never panics and has a zero value for every degenerate
// input
func Extract(raw string, tokens []string, spam, ham lexicon.WordSet) MessageFeatures {
	var f MessageFeatures

	words := wordPattern.FindAllString(raw, -1)
	distinct := make(map[string]struct{}, len(words))
	runeTotal := 0
	for _, w := range words {
		distinct[strings.ToLower(w)] = struct{}{}
		runeTotal += utf8.RuneCountInString(w)
	}

	f.WordCount = len(words)
	f.CharCount = utf8.RuneCountInString(raw)
	f.UniqueWordCount = len(distinct)
	if len(words) > 0 {
		f.AvgWordLength = round(float64(runeTotal) / float64(len(words)))
	}
	f.CharNgramCount = charTrigrams(raw)

	for _, w := range words {
		if allCapsPattern.MatchString(w) {
			f.AllCapsWordCount++
		}
	}
	for w := range distinct {
		if spam.Contains(w) {
			f.SpamKeywordFrequency++
		}
		if ham.Contains(w) {
			f.HamKeywordFrequency++
		}
		if imperativeVerbs.Contains(w) {
			f.ImperativeVerbCount++
		}
		if urgencyWords.Contains(w) {
			f.UrgencyWordCount++
		}
	}

	f.CapitalLetterRatio = round(patterns.CapitalRatio(raw))
	f.ExclamationCount = strings.Count(raw, "!")
	f.QuestionMarkCount = strings.Count(raw, "?")
	for _, r := range raw {
		if strings.ContainsRune(specialChars, r) {
			f.SpecialCharCount++
		}
	}

	for _, u := range patterns.FindURLs(raw) {
		f.URLCount++
		lower := strings.ToLower(u)
		switch {
		case strings.HasPrefix(lower, "https://"):
			f.HTTPSLinkCount++
		case strings.HasPrefix(lower, "http://"):
			f.HTTPLinkCount++
		}
		host := patterns.URLHost(u)
		if patterns.IsShortenerHost(host) {
			f.URLShortenerCount++
		}
		if patterns.IsIPv4Host(host) {
			f.SuspiciousIPURLCount++
		}
	}

	f.HTMLContentPresence = htmlPattern.MatchString(raw)
	f.HiddenOrColoredText = hiddenPattern.MatchString(raw)

	f.TextEntropy = round(entropy(raw))
	f.RepeatedWordRatio = roundBelowOne(repeatedRatio(tokens))

	return f
}

func charTrigrams(raw string) int {
	runes := []rune(strings.ReplaceAll(strings.ToLower(raw), " ", ""))
	if len(runes) < 3 {
		return 0
	}
	seen := make(map[string]struct{})
	for i := 0; i+3 <= len(runes); i++ {
		seen[string(runes[i:i+3])] = struct{}{}
	}
	return len(seen)
}

func entropy(raw string) float64 {
	if raw == "" {
		return 0
	}
	counts := make(map[rune]int)
	total := 0
	for _, r := range strings.ToLower(raw) {
		counts[r]++
		total++
	}
	h := 0.0
	for _, c := range counts {
		p := float64(c) / float64(total)
		h -= p * math.Log2(p)
	}
	// a single-symbol text yields -0
	return math.Abs(h)
}

func repeatedRatio(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	distinct := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		distinct[t] = struct{}{}
	}
	return 1 - float64(len(distinct))/float64(len(tokens))
}

func round(x float64) float64 {
	p := math.Pow10(Precision)
	return math.Round(x*p) / p
}

// roundBelowOne rounds like round but keeps a ratio below 1 from reaching 1
func roundBelowOne(x float64) float64 {
	r := round(x)
	if r >= 1 && x < 1 {
		p := math.Pow10(Precision)
		return (p - 1) / p
	}
	return r
}
