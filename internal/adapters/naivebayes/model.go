// Package naivebayes implements an offline multinomial naive Bayes classifier
// over normalized tokens, loaded from an exported JSON model
package naivebayes

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrInvalidModel is returned when a model file is inconsistent
var ErrInvalidModel = errors.New("invalid naive bayes model")

// Model is the exported state of a trained multinomial naive Bayes classifier
// and its vectorizer. Class index 0 is ham and index 1 is spam
type Model struct {
	Name           string         `json:"name"`
	Vocabulary     map[string]int `json:"vocabulary"`
	IDF            []float64      `json:"idf,omitempty"`
	ClassLogPrior  []float64      `json:"class_log_prior"`
	FeatureLogProb [][]float64    `json:"feature_log_prob"`
}

// ReadModel decodes and validates a model
func ReadModel(r io.Reader) (*Model, error) {
	var m Model
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadModel reads a model file from disk
func LoadModel(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model %s: %w", path, err)
	}
	defer f.Close()

	m, err := ReadModel(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", path, err)
	}
	return m, nil
}

// Validate checks that the model dimensions agree
func (m *Model) Validate() error {
	n := len(m.Vocabulary)
	if n == 0 {
		return fmt.Errorf("%w: empty vocabulary", ErrInvalidModel)
	}
	if len(m.ClassLogPrior) != 2 || len(m.FeatureLogProb) != 2 {
		return fmt.Errorf("%w: expected 2 classes, got %d priors and %d feature rows",
			ErrInvalidModel, len(m.ClassLogPrior), len(m.FeatureLogProb))
	}
	for c, row := range m.FeatureLogProb {
		if len(row) != n {
			return fmt.Errorf("%w: class %d has %d feature weights for %d terms", ErrInvalidModel, c, len(row), n)
		}
	}
	if m.IDF != nil && len(m.IDF) != n {
		return fmt.Errorf("%w: %d idf weights for %d terms", ErrInvalidModel, len(m.IDF), n)
	}
	for term, idx := range m.Vocabulary {
		if idx < 0 || idx >= n {
			return fmt.Errorf("%w: term %q has index %d out of range", ErrInvalidModel, term, idx)
		}
	}
	return nil
}
