package annotate

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/mikey/spam-insight/internal/lexicon"
)

func TestAnnotateRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"FREE!!! You WON a PRIZE, click http://bit.ly/x now!!!!",
		"Hi John,\n\tare we still meeting?",
		"café 日本語 123_abc",
		"\xff\xfebroken\x80bytes \x00",
	}
	spam := lexicon.NewWordSet("free", "prize")
	ham := lexicon.NewWordSet("hi", "meeting")

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			m := Annotate(in, spam, ham)
			if got := m.Text(); got != in {
				t.Errorf("got %q, want %q", got, in)
			}
			for _, s := range m.Segments {
				if s.Text == "" {
					t.Error("empty segment")
				}
			}
		})
	}
}

func TestAnnotateSkipsNonWordSegments(t *testing.T) {
	spam := lexicon.NewWordSet("$$$", "win")
	ham := lexicon.NewWordSet("!!!", " ")

	in := "Win $$$ now!!! \xff ok"
	m := Annotate(in, spam, ham)

	if got := m.Text(); got != in {
		t.Fatalf("got %q, want %q", got, in)
	}
	for _, s := range m.Segments {
		want := TagNone
		if s.Text == "Win" {
			want = TagSpam
		}
		if s.Tag != want {
			t.Errorf("segment %q: got %v, want %v", s.Text, s.Tag, want)
		}
	}
	if m.Count(TagSpam) != 1 || m.Count(TagHam) != 0 {
		t.Errorf("counts: got %d spam, %d ham, want 1 and 0", m.Count(TagSpam), m.Count(TagHam))
	}
}

func TestAnnotateTags(t *testing.T) {
	spam := lexicon.NewWordSet("free", "deal")
	ham := lexicon.NewWordSet("hi", "deal")

	m := Annotate("Hi, FREE deal!", spam, ham)

	want := []Segment{
		{"Hi", TagHam},
		{",", TagNone},
		{" ", TagNone},
		{"FREE", TagSpam},
		{" ", TagNone},
		{"deal", TagSpam},
		{"!", TagNone},
	}
	if !reflect.DeepEqual(m.Segments, want) {
		t.Errorf("got %+v, want %+v", m.Segments, want)
	}
	if m.Count(TagSpam) != 2 || m.Count(TagHam) != 1 {
		t.Errorf("counts: got %d spam, %d ham", m.Count(TagSpam), m.Count(TagHam))
	}
}

func TestAnnotateEmptySets(t *testing.T) {
	m := Annotate("nothing to see here", nil, nil)
	if n := m.Count(TagNone); n != len(m.Segments) {
		t.Errorf("got %d untagged of %d segments", n, len(m.Segments))
	}
}

func TestRenderers(t *testing.T) {
	m := Annotate("Hi <b> FREE", lexicon.NewWordSet("free"), lexicon.NewWordSet("hi"))

	tests := []struct {
		name string
		want string
	}{
		{RendererPlain, "((Hi)) <b> [[FREE]]"},
		{RendererHTML, `<mark class="ham">Hi</mark> &lt;b&gt; <mark class="spam">FREE</mark>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRenderer(tt.name)
			if err != nil {
				t.Fatalf("NewRenderer: %v", err)
			}
			if got := r.Render(m); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTerminalRendererKeepsText(t *testing.T) {
	m := Annotate("Hi there FREE", lexicon.NewWordSet("free"), lexicon.NewWordSet("hi"))
	out := NewTerminalRenderer().Render(m)
	for _, w := range []string{"Hi", "there", "FREE"} {
		if !strings.Contains(out, w) {
			t.Errorf("output %q is missing %q", out, w)
		}
	}
}

func TestNewRendererUnknown(t *testing.T) {
	if _, err := NewRenderer("pdf"); !errors.Is(err, ErrUnknownRenderer) {
		t.Errorf("got %v, want %v", err, ErrUnknownRenderer)
	}
}
