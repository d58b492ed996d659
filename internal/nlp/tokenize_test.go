package nlp

import (
	"reflect"
	"testing"
)

func TestWordTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", " \t\n ", nil},
		{
			name: "punctuation is split off",
			in:   "free!!! you won a prize, click now",
			want: []string{"free", "!", "!", "!", "you", "won", "a", "prize", ",", "click", "now"},
		},
		{
			name: "url keeps its path",
			in:   "visit http://bit.ly/x now",
			want: []string{"visit", "http", ":", "//bit.ly/x", "now"},
		},
		{
			name: "numbers keep separators",
			in:   "pay $1,000 at 10:30",
			want: []string{"pay", "$", "1,000", "at", "10:30"},
		},
		{
			name: "contractions",
			in:   "don't worry, it's john's",
			want: []string{"do", "n't", "worry", ",", "it", "'s", "john", "'s"},
		},
		{
			name: "quoted word",
			in:   `"hello" (world)`,
			want: []string{`"`, "hello", `"`, "(", "world", ")"},
		},
		{
			name: "hyphenated word stays whole",
			in:   "e-mail me",
			want: []string{"e-mail", "me"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WordTokenize(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WordTokenize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
