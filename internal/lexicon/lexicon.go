// Package lexicon holds the reference word sets used to flag spam- and
// ham-leaning vocabulary in a message
package lexicon

import "strings"

// WordSet is an immutable set of lower-cased words. A nil WordSet is a valid
// empty set
type WordSet map[string]struct{}

// NewWordSet builds a WordSet from the given words, lower-casing and trimming
// each one. Blank entries are skipped
func NewWordSet(words ...string) WordSet {
	set := make(WordSet, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}

// Contains reports whether word is in the set. The lookup is exact; callers
// lower-case before asking
func (s WordSet) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// Len returns the number of words in the set
func (s WordSet) Len() int {
	return len(s)
}

// ReferenceSets groups the spam-associated and ham-associated word sets.
// It is loaded once at startup and shared read-only by every analysis
type ReferenceSets struct {
	Spam WordSet
	Ham  WordSet
}

// EmptyReferenceSets returns reference sets with no words in them
func EmptyReferenceSets() ReferenceSets {
	return ReferenceSets{Spam: WordSet{}, Ham: WordSet{}}
}
