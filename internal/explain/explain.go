// Package explain turns a classifier verdict and the indicator report into a
// human-readable justification
package explain

import (
	"fmt"
	"strings"

	"github.com/mikey/spam-insight/internal/features"
	"github.com/mikey/spam-insight/internal/patterns"
)

// DefaultDisplayLimit is the number of found words shown before "+N more"
const DefaultDisplayLimit = 10

// Explanation is the presentation-ready summary of one analysis
type Explanation struct {
	Verdict        string   `json:"verdict"`
	Confidence     float64  `json:"confidence"`
	Agreement      bool     `json:"indicators_agree"`
	Reasons        []string `json:"reasons"`
	SpamWords      string   `json:"spam_words"`
	HamWords       string   `json:"ham_words"`
	SpamIndicators int      `json:"spam_indicators"`
	HamIndicators  int      `json:"ham_indicators"`
}

// Input collects what Summarize formats
type Input struct {
	IsSpam          bool
	SpamProbability float64
	Report          patterns.Report
	Features        features.MessageFeatures
	DisplayLimit    int
}

// Summarize formats in without computing new signals. Confidence is the
// probability of the predicted class as a percentage
func Summarize(in Input) Explanation {
	limit := in.DisplayLimit
	if limit <= 0 {
		limit = DefaultDisplayLimit
	}

	e := Explanation{
		Verdict:        "HAM",
		Confidence:     percent(1 - in.SpamProbability),
		SpamWords:      FormatWordList(in.Report.FoundSpamWords, limit),
		HamWords:       FormatWordList(in.Report.FoundHamWords, limit),
		SpamIndicators: in.Report.SpamIndicators,
		HamIndicators:  in.Report.HamIndicators,
	}
	if in.IsSpam {
		e.Verdict = "SPAM"
		e.Confidence = percent(in.SpamProbability)
	}
	e.Agreement = (in.Report.SpamIndicators > in.Report.HamIndicators) == in.IsSpam

	e.Reasons = reasons(in)
	return e
}

func reasons(in Input) []string {
	out := []string{}
	for _, name := range patterns.DetectorNames(patterns.SpamDetectors) {
		if in.Report.SpamPatterns[name] {
			out = append(out, "spam pattern: "+name)
		}
	}
	for _, name := range patterns.DetectorNames(patterns.HamDetectors) {
		if in.Report.HamPatterns[name] {
			out = append(out, "ham pattern: "+name)
		}
	}
	if n := len(in.Report.FoundSpamWords); n > 0 {
		out = append(out, fmt.Sprintf("%d known spam word(s)", n))
	}
	if n := len(in.Report.FoundHamWords); n > 0 {
		out = append(out, fmt.Sprintf("%d known ham word(s)", n))
	}
	f := in.Features
	if f.URLCount > 0 {
		out = append(out, fmt.Sprintf("%d link(s), %d shortened, %d to raw IP addresses", f.URLCount, f.URLShortenerCount, f.SuspiciousIPURLCount))
	}
	if f.ExclamationCount > patterns.ExclamationThreshold {
		out = append(out, fmt.Sprintf("%d exclamation marks", f.ExclamationCount))
	}
	if f.CapitalLetterRatio > patterns.CapitalRatioThreshold {
		out = append(out, fmt.Sprintf("%.0f%% capital letters", f.CapitalLetterRatio*100))
	}
	if f.HiddenOrColoredText {
		out = append(out, "hidden or camouflaged text")
	}
	return out
}

// FormatWordList joins the first limit words with ", " and appends "+N more"
// for the rest. It returns "none" for an empty list
func FormatWordList(words []string, limit int) string {
	if len(words) == 0 {
		return "none"
	}
	if limit <= 0 || len(words) <= limit {
		return strings.Join(words, ", ")
	}
	return fmt.Sprintf("%s +%d more", strings.Join(words[:limit], ", "), len(words)-limit)
}

func percent(p float64) float64 {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return float64(int(p*10000+0.5)) / 100
}
