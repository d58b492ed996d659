// Package patterns holds the canonical table of semantic spam/ham detectors
// and the indicator analyzer that aggregates them into scores
package patterns

import "regexp"

// Detector is a named, case-insensitive whole-word or whole-phrase pattern
type Detector struct {
	Name    string
	Pattern *regexp.Regexp
}

// Spam-leaning detector names
const (
	FreeFreebie     = "Free/Freebie"
	WinPrize        = "Win/Prize"
	Urgent          = "Urgent"
	Click           = "Click"
	LimitedTime     = "Limited Time/Offer"
	Money           = "Money"
	Congratulations = "Congratulations"
)

// Ham-leaning detector names
const (
	PersonalGreeting   = "Personal Greeting"
	PersonalPronouns   = "Personal Pronouns"
	QuestionWords      = "Question Words"
	CasualAffirmations = "Casual Affirmations"
)

// SpamDetectors is the fixed battery of spam-leaning detectors, in display order
var SpamDetectors = []Detector{
	{FreeFreebie, wholeWords(`free|freebies?`)},
	{WinPrize, wholeWords(`win|wins|winning|won|winners?|prizes?|awards?|awarded`)},
	{Urgent, wholeWords(`urgent|urgently|immediately|asap|act\s+now|right\s+away|hurry`)},
	{Click, wholeWords(`click(\s+(here|now|below|(the\s+)?link))?`)},
	{LimitedTime, wholeWords(`limited[\s-]+time|limited\s+offer|offers?|expires?|expiring|expiration`)},
	{Money, regexp.MustCompile(`(?i)[$£€]|` + wholeWordExpr(`money|cash|dollars?|usd|currency`))},
	{Congratulations, wholeWords(`congratulations|congratulation|congrats`)},
}

// HamDetectors is the fixed battery of ham-leaning detectors, in display order
var HamDetectors = []Detector{
	{PersonalGreeting, wholeWords(`hi|hello|hey|dear|good\s+(morning|afternoon|evening)`)},
	{PersonalPronouns, wholeWords(`i|me|my|mine|we|us|our|you|your`)},
	{QuestionWords, wholeWords(`what|when|where|who|whom|whose|why|how|which|(are|is|do|does|did|can|could|would|will|shall|should)\s+(you|we|i|they|he|she|it)`)},
	{CasualAffirmations, wholeWords(`ok|okay|sure|yes|yeah|yep|cool|great|thanks|thank\s+you|sounds\s+good|no\s+problem`)},
}

// nonWord is any rune outside the Unicode word class; regexp's \b only knows ASCII
const nonWord = `[^\p{L}\p{N}_]`

func wholeWordExpr(alts string) string {
	return `(?:^|` + nonWord + `)(?:` + alts + `)(?:$|` + nonWord + `)`
}

// wholeWords compiles a case-insensitive matcher for alts bounded by text
// edges or non-word runes
func wholeWords(alts string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + wholeWordExpr(alts))
}

// ImperativeVerbs is the call-to-action vocabulary counted by the behavioral features
var ImperativeVerbs = []string{
	"click", "buy", "call", "claim", "order", "subscribe", "register", "apply",
	"act", "download", "visit", "reply", "verify", "confirm", "join", "redeem",
	"shop", "start", "get", "try",
}

// UrgencyWords is the time-pressure vocabulary counted by the behavioral features
var UrgencyWords = []string{
	"urgent", "immediately", "asap", "now", "today", "hurry", "expire", "expires",
	"expiring", "deadline", "limited", "instant", "quick", "final", "last", "soon",
}

// ShortenerDomains lists known URL-shortening services
var ShortenerDomains = []string{
	"bit.ly", "tinyurl.com", "goo.gl", "t.co", "ow.ly", "is.gd", "buff.ly",
	"adf.ly", "bit.do", "cutt.ly", "shorturl.at", "rb.gy", "tiny.cc",
	"rebrand.ly", "t.ly",
}

// DetectorNames returns the names of ds in table order
func DetectorNames(ds []Detector) []string {
	names := make([]string, len(ds))
	for i, d := range ds {
		names[i] = d.Name
	}
	return names
}
