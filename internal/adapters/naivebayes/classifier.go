package naivebayes

import (
	"context"
	"math"

	"github.com/mikey/spam-insight/internal/core"
	"go.uber.org/zap"
)

// Classifier scores normalized tokens with a naive Bayes model
type Classifier struct {
	model  *Model
	logger *zap.Logger
}

// NewClassifier creates a classifier over a validated model
func NewClassifier(model *Model, logger *zap.Logger) *Classifier {
	return &Classifier{model: model, logger: logger}
}

// Name identifies the model
func (c *Classifier) Name() string {
	if c.model.Name != "" {
		return "naive_bayes:" + c.model.Name
	}
	return "naive_bayes"
}

// Transform turns tokens into a sparse term vector: raw counts, or TF-IDF
// weights scaled to unit length when the model carries idf weights.
// Tokens outside the vocabulary are ignored
func (c *Classifier) Transform(tokens []string) map[int]float64 {
	vec := make(map[int]float64)
	for _, tok := range tokens {
		if idx, ok := c.model.Vocabulary[tok]; ok {
			vec[idx]++
		}
	}
	if c.model.IDF == nil {
		return vec
	}

	norm := 0.0
	for idx, v := range vec {
		w := v * c.model.IDF[idx]
		vec[idx] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range vec {
			vec[idx] /= norm
		}
	}
	return vec
}

// PredictProba returns [ham, spam] probabilities for a term vector
func (c *Classifier) PredictProba(vec map[int]float64) [2]float64 {
	var jll [2]float64
	for class := range jll {
		jll[class] = c.model.ClassLogPrior[class]
		for idx, v := range vec {
			jll[class] += v * c.model.FeatureLogProb[class][idx]
		}
	}

	// log-sum-exp keeps tiny likelihoods from underflowing
	max := math.Max(jll[0], jll[1])
	e0, e1 := math.Exp(jll[0]-max), math.Exp(jll[1]-max)
	sum := e0 + e1
	return [2]float64{e0 / sum, e1 / sum}
}

// Classify implements core.Classifier. Ties resolve to ham
func (c *Classifier) Classify(ctx context.Context, req *core.ClassificationRequest) (*core.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vec := c.Transform(req.Normalized.Tokens)
	proba := c.PredictProba(vec)

	label := core.LabelHam
	if proba[1] > proba[0] {
		label = core.LabelSpam
	}

	c.logger.Debug("Naive Bayes classification",
		zap.Int("known_terms", len(vec)),
		zap.Float64("spam_probability", proba[1]))

	return &core.Prediction{
		Label:         label,
		Probabilities: proba,
		ModelUsed:     c.Name(),
	}, nil
}
