// Package annotate splits raw message text into layout-preserving segments and
// tags the words that appear in the spam or ham reference sets
package annotate

import (
	"regexp"
	"strings"

	"github.com/mikey/spam-insight/internal/lexicon"
)

// Tag marks a segment as indicative of one class
type Tag string

// Segment tags
const (
	TagNone Tag = "none"
	TagSpam Tag = "spam-indicative"
	TagHam  Tag = "ham-indicative"
)

// Segment is a contiguous slice of the input text
type Segment struct {
	Text string `json:"text"`
	Tag  Tag    `json:"tag"`
}

// Message is an annotated message. Concatenating the segment texts yields the
// input exactly
type Message struct {
	Segments []Segment `json:"segments"`
}

// the first group captures word runs; only those are looked up
var segmentPattern = regexp.MustCompile(`([\p{L}\p{N}_]+)|[^\p{L}\p{N}_\s]+|\s+`)

// Annotate segments raw into word, punctuation and whitespace runs and tags
// each word found in spam or ham. A word present in both sets is tagged spam
func Annotate(raw string, spam, ham lexicon.WordSet) Message {
	m := Message{Segments: []Segment{}}

	pos := 0
	for _, loc := range segmentPattern.FindAllStringSubmatchIndex(raw, -1) {
		if loc[0] > pos {
			m.Segments = append(m.Segments, Segment{Text: raw[pos:loc[0]], Tag: TagNone})
		}
		text := raw[loc[0]:loc[1]]
		tag := TagNone
		if loc[2] >= 0 {
			tag = tagFor(text, spam, ham)
		}
		m.Segments = append(m.Segments, Segment{Text: text, Tag: tag})
		pos = loc[1]
	}
	if pos < len(raw) {
		m.Segments = append(m.Segments, Segment{Text: raw[pos:], Tag: TagNone})
	}

	return m
}

func tagFor(text string, spam, ham lexicon.WordSet) Tag {
	word := strings.ToLower(text)
	switch {
	case spam.Contains(word):
		return TagSpam
	case ham.Contains(word):
		return TagHam
	default:
		return TagNone
	}
}

// Text reassembles the original input
func (m Message) Text() string {
	var b strings.Builder
	for _, s := range m.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Count returns the number of segments carrying tag
func (m Message) Count(tag Tag) int {
	n := 0
	for _, s := range m.Segments {
		if s.Tag == tag {
			n++
		}
	}
	return n
}
