package lexicon

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// WordColumn is the CSV header naming the column that carries the words
const WordColumn = "word"

// ErrMissingWordColumn is returned when a word list has no "word" header
var ErrMissingWordColumn = errors.New("word list has no \"word\" column")

// ReadWordSet reads a CSV word list from r. The first row is the header and
// must contain a "word" column; other columns are ignored
func ReadWordSet(r io.Reader) (WordSet, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrMissingWordColumn
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	wordIdx := -1
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		if strings.EqualFold(strings.TrimSpace(h), WordColumn) {
			wordIdx = i
			break
		}
	}
	if wordIdx < 0 {
		return nil, ErrMissingWordColumn
	}

	set := WordSet{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read word list row: %w", err)
		}
		if wordIdx >= len(record) {
			continue
		}
		w := strings.ToLower(strings.TrimSpace(record[wordIdx]))
		if w != "" {
			set[w] = struct{}{}
		}
	}

	return set, nil
}

// LoadWordSet reads a CSV word list from path
func LoadWordSet(path string) (WordSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list: %w", err)
	}
	defer f.Close()

	return ReadWordSet(f)
}

// LoadReferenceSets loads the spam and ham word lists. A list that is not
// configured, missing or malformed degrades to an empty set; the problem is
// logged once and never returned
func LoadReferenceSets(spamPath, hamPath string, logger *zap.Logger) ReferenceSets {
	return ReferenceSets{
		Spam: loadOrEmpty("spam", spamPath, logger),
		Ham:  loadOrEmpty("ham", hamPath, logger),
	}
}

func loadOrEmpty(kind, path string, logger *zap.Logger) WordSet {
	if path == "" {
		logger.Warn("Word list not configured, using empty set", zap.String("list", kind))
		return WordSet{}
	}

	set, err := LoadWordSet(path)
	if err != nil {
		logger.Warn("Failed to load word list, using empty set",
			zap.String("list", kind),
			zap.String("path", path),
			zap.Error(err))
		return WordSet{}
	}

	logger.Info("Loaded word list",
		zap.String("list", kind),
		zap.String("path", path),
		zap.Int("words", set.Len()))
	return set
}
