package nlp

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	p := NewEnglish()

	tests := []struct {
		name     string
		in       string
		want     []string
		wantText string
	}{
		{"empty", "", []string{}, ""},
		{"punctuation and emoji only", "!!! ?? 🎉🎉 ...", []string{}, ""},
		{
			name:     "stopwords removed and tokens stemmed",
			in:       "The runners were running quickly",
			want:     []string{"runner", "run", "quick"},
			wantText: "runner run quick",
		},
		{
			name:     "contraction leftovers dropped",
			in:       "Don't CLICK!!",
			want:     []string{"click"},
			wantText: "click",
		},
		{
			name:     "duplicates and order preserved",
			in:       "offers, free offers, FREE",
			want:     []string{"offer", "free", "offer", "free"},
			wantText: "offer free offer free",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in, p)
			if !reflect.DeepEqual(got.Tokens, tt.want) {
				t.Errorf("Tokens = %q, want %q", got.Tokens, tt.want)
			}
			if got.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", got.Text, tt.wantText)
			}
		})
	}
}

func TestNormalizeMixedTokensDropped(t *testing.T) {
	got := Normalize("Hi John, are we still meeting for coffee tomorrow at 3pm? e-mail me", NewEnglish())

	joined := " " + got.Text + " "
	for _, want := range []string{"hi", "john", "meet", "3pm"} {
		if !strings.Contains(joined, " "+want+" ") {
			t.Errorf("normalized text %q should contain %q", got.Text, want)
		}
	}
	for _, unwanted := range []string{"are", "we", "for", "at", "e-mail", "?", ","} {
		if strings.Contains(joined, " "+unwanted+" ") {
			t.Errorf("normalized text %q should not contain %q", got.Text, unwanted)
		}
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	p := NewEnglish()
	in := "URGENT!!! Claim your FREE prize at http://1.2.3.4/win before it expires"

	first := Normalize(in, p)
	for i := 0; i < 5; i++ {
		if got := Normalize(in, p); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: got %+v, want %+v", i, got, first)
		}
	}
}

func TestLoadStopwords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stoplist.yaml")
	if err := os.WriteFile(path, []byte("terms:\n  - hello\n  - world\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	terms, err := LoadStopwords(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(terms, []string{"hello", "world"}) {
		t.Errorf("terms = %q", terms)
	}

	p := NewEnglishWithStopwords(terms)
	got := Normalize("Hello big world", p)
	if got.Text != "big" {
		t.Errorf("Text = %q, want %q", got.Text, "big")
	}

	if _, err := LoadStopwords(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing stoplist")
	}
}
