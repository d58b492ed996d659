package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// TextColumn is the default CSV column holding message text
const TextColumn = "text"

// ErrMissingColumn is returned when the CSV header lacks the text column
var ErrMissingColumn = errors.New("csv has no text column")

// ReadTexts reads the named column of a headed CSV file
func ReadTexts(r io.Reader, column string) ([]string, error) {
	if column == "" {
		column = TextColumn
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input", ErrMissingColumn)
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	idx := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")), column) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: want %q", ErrMissingColumn, column)
	}

	var texts []string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv record: %w", err)
		}
		if idx < len(record) {
			texts = append(texts, record[idx])
		} else {
			texts = append(texts, "")
		}
	}
	return texts, nil
}
