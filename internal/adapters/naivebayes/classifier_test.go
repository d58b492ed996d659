package naivebayes

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mikey/spam-insight/internal/core"
	"github.com/mikey/spam-insight/internal/nlp"
	"go.uber.org/zap"
)

func testModel() *Model {
	l := math.Log
	return &Model{
		Name:          "test",
		Vocabulary:    map[string]int{"free": 0, "prize": 1, "meet": 2, "lunch": 3},
		ClassLogPrior: []float64{l(0.5), l(0.5)},
		FeatureLogProb: [][]float64{
			{l(0.1), l(0.1), l(0.4), l(0.4)},
			{l(0.4), l(0.4), l(0.1), l(0.1)},
		},
	}
}

func classify(t *testing.T, m *Model, tokens ...string) *core.Prediction {
	t.Helper()
	c := NewClassifier(m, zap.NewNop())
	p, err := c.Classify(context.Background(), &core.ClassificationRequest{Normalized: nlp.Normalized{Tokens: tokens}})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	return p
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		label  string
		spam   float64
	}{
		{"spam terms", []string{"free", "prize"}, core.LabelSpam, 16.0 / 17.0},
		{"ham terms", []string{"meet", "lunch"}, core.LabelHam, 1.0 / 17.0},
		{"unknown terms tie", []string{"zebra"}, core.LabelHam, 0.5},
		{"no terms tie", nil, core.LabelHam, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := classify(t, testModel(), tt.tokens...)
			if p.Label != tt.label {
				t.Errorf("label: got %q, want %q", p.Label, tt.label)
			}
			if !almostEqual(p.SpamProbability(), tt.spam) {
				t.Errorf("spam probability: got %v, want %v", p.SpamProbability(), tt.spam)
			}
			if !almostEqual(p.Probabilities[0]+p.Probabilities[1], 1) {
				t.Errorf("probabilities should sum to 1, got %v", p.Probabilities)
			}
			if p.ModelUsed != "naive_bayes:test" {
				t.Errorf("model: got %q", p.ModelUsed)
			}
		})
	}
}

func TestTransformTFIDF(t *testing.T) {
	m := testModel()
	m.IDF = []float64{1, 1, 1, 1}
	c := NewClassifier(m, zap.NewNop())

	vec := c.Transform([]string{"free", "free"})
	if len(vec) != 1 || !almostEqual(vec[0], 1) {
		t.Errorf("got %v, want unit weight on term 0", vec)
	}

	p := classify(t, m, "free", "free")
	if !almostEqual(p.SpamProbability(), 0.8) {
		t.Errorf("spam probability: got %v, want 0.8", p.SpamProbability())
	}
}

func TestClassifyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClassifier(testModel(), zap.NewNop())
	if _, err := c.Classify(ctx, &core.ClassificationRequest{}); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestReadModelInvalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"empty vocabulary", `{"vocabulary": {}, "class_log_prior": [0, 0], "feature_log_prob": [[], []]}`},
		{"three classes", `{"vocabulary": {"a": 0}, "class_log_prior": [0, 0, 0], "feature_log_prob": [[0], [0]]}`},
		{"short row", `{"vocabulary": {"a": 0, "b": 1}, "class_log_prior": [0, 0], "feature_log_prob": [[0], [0, 0]]}`},
		{"index out of range", `{"vocabulary": {"a": 5}, "class_log_prior": [0, 0], "feature_log_prob": [[0], [0]]}`},
		{"idf mismatch", `{"vocabulary": {"a": 0}, "idf": [1, 2], "class_log_prior": [0, 0], "feature_log_prob": [[0], [0]]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadModel(strings.NewReader(tt.json)); !errors.Is(err, ErrInvalidModel) {
				t.Errorf("got %v, want ErrInvalidModel", err)
			}
		})
	}
}

func TestLoadModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	data := `{"name": "disk", "vocabulary": {"win": 0}, "class_log_prior": [-0.7, -0.7], "feature_log_prob": [[-2.0], [-0.1]]}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	m, err := LoadModel(path)
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	if p := classify(t, m, "win"); p.Label != core.LabelSpam {
		t.Errorf("label: got %q, want spam", p.Label)
	}

	if _, err := LoadModel(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error for a missing model")
	}
}
