package patterns

import (
	"strings"

	"github.com/mikey/spam-insight/internal/lexicon"
)

// Indicator thresholds. These are fixed scoring constants, not tunables
const (
	ExclamationThreshold  = 3
	CapitalRatioThreshold = 0.3
)

// Report is the rule-based evidence behind a classification
type Report struct {
	SpamPatterns   map[string]bool `json:"spam_patterns"`
	HamPatterns    map[string]bool `json:"ham_patterns"`
	FoundSpamWords []string        `json:"found_spam_words"`
	FoundHamWords  []string        `json:"found_ham_words"`
	SpamIndicators int             `json:"spam_indicators"`
	HamIndicators  int             `json:"ham_indicators"`
}

// Analyze runs the detector table over raw, matches the normalized tokens
// against the reference sets and aggregates both into indicator scores.
//
// Spam score: matched spam detectors + found spam words (repeats count)
// + 1 if any URL + 1 if more than 3 '!' + 1 if the capital ratio exceeds 0.3.
// Ham score: matched ham detectors + found ham words
func Analyze(raw string, tokens []string, spam, ham lexicon.WordSet) Report {
	r := Report{
		SpamPatterns:   detect(raw, SpamDetectors),
		HamPatterns:    detect(raw, HamDetectors),
		FoundSpamWords: matchTokens(tokens, spam),
		FoundHamWords:  matchTokens(tokens, ham),
	}

	r.SpamIndicators = countTrue(r.SpamPatterns) + len(r.FoundSpamWords)
	if urlPattern.MatchString(raw) {
		r.SpamIndicators++
	}
	if strings.Count(raw, "!") > ExclamationThreshold {
		r.SpamIndicators++
	}
	if CapitalRatio(raw) > CapitalRatioThreshold {
		r.SpamIndicators++
	}

	r.HamIndicators = countTrue(r.HamPatterns) + len(r.FoundHamWords)

	return r
}

func detect(raw string, ds []Detector) map[string]bool {
	found := make(map[string]bool, len(ds))
	for _, d := range ds {
		found[d.Name] = d.Pattern.MatchString(raw)
	}
	return found
}

func matchTokens(tokens []string, set lexicon.WordSet) []string {
	found := []string{}
	for _, tok := range tokens {
		if set.Contains(strings.ToLower(tok)) {
			found = append(found, tok)
		}
	}
	return found
}

func countTrue(m map[string]bool) int {
	n := 0
	for _, v := range m {
		if v {
			n++
		}
	}
	return n
}
