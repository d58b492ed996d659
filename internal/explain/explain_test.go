package explain

import (
	"reflect"
	"strings"
	"testing"

	"github.com/mikey/spam-insight/internal/features"
	"github.com/mikey/spam-insight/internal/patterns"
)

func TestFormatWordList(t *testing.T) {
	many := strings.Split("a b c d e f g h i j k l", " ")

	tests := []struct {
		name  string
		words []string
		limit int
		want  string
	}{
		{"empty", nil, 10, "none"},
		{"under limit", []string{"free", "free"}, 10, "free, free"},
		{"at limit", many[:10], 10, "a, b, c, d, e, f, g, h, i, j"},
		{"over limit", many, 10, "a, b, c, d, e, f, g, h, i, j +2 more"},
		{"no limit", many[:3], 0, "a, b, c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatWordList(tt.words, tt.limit); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummarizeSpam(t *testing.T) {
	raw := "FREE!!! You WON a PRIZE, click http://bit.ly/x now!!!!"
	report := patterns.Analyze(raw, []string{"free"}, nil, nil)
	f := features.Extract(raw, []string{"free"}, nil, nil)

	e := Summarize(Input{IsSpam: true, SpamProbability: 0.987, Report: report, Features: f})

	if e.Verdict != "SPAM" {
		t.Errorf("verdict: got %q, want SPAM", e.Verdict)
	}
	if e.Confidence != 98.7 {
		t.Errorf("confidence: got %v, want 98.7", e.Confidence)
	}
	if !e.Agreement {
		t.Error("indicators should agree with a spam verdict")
	}
	want := []string{
		"spam pattern: Free/Freebie",
		"spam pattern: Win/Prize",
		"spam pattern: Click",
		"ham pattern: Personal Pronouns",
		"1 link(s), 1 shortened, 0 to raw IP addresses",
		"7 exclamation marks",
		"38% capital letters",
	}
	if !reflect.DeepEqual(e.Reasons, want) {
		t.Errorf("reasons:\ngot  %q\nwant %q", e.Reasons, want)
	}
}

func TestSummarizeHam(t *testing.T) {
	raw := "Hi John, are we still meeting for coffee tomorrow at 3pm?"
	report := patterns.Analyze(raw, nil, nil, nil)

	e := Summarize(Input{SpamProbability: 0.1, Report: report})

	if e.Verdict != "HAM" {
		t.Errorf("verdict: got %q, want HAM", e.Verdict)
	}
	if e.Confidence != 90 {
		t.Errorf("confidence: got %v, want 90", e.Confidence)
	}
	if !e.Agreement {
		t.Error("indicators should agree with a ham verdict")
	}
	if e.SpamWords != "none" || e.HamWords != "none" {
		t.Errorf("word lists: got %q / %q", e.SpamWords, e.HamWords)
	}
}
