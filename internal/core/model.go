package core

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/mikey/spam-insight/internal/annotate"
	"github.com/mikey/spam-insight/internal/explain"
	"github.com/mikey/spam-insight/internal/features"
	"github.com/mikey/spam-insight/internal/nlp"
	"github.com/mikey/spam-insight/internal/patterns"
)

// Classification labels
const (
	LabelHam  = "ham"
	LabelSpam = "spam"
)

// Email represents an email message
type Email struct {
	From    string
	To      []string
	Subject string
	Body    string
	Headers map[string][]string
}

// Text returns the analyzable text of an email: subject and body
func (e *Email) Text() string {
	if e.Subject == "" {
		return e.Body
	}
	return e.Subject + "\n\n" + e.Body
}

// ClassificationRequest is what a Classifier sees of a message
type ClassificationRequest struct {
	Raw        string
	Normalized nlp.Normalized
}

// Prediction is a classifier verdict. Probabilities are ordered [ham, spam]
type Prediction struct {
	Label         string     `json:"label"`
	Probabilities [2]float64 `json:"probabilities"`
	ModelUsed     string     `json:"model_used"`
}

// IsSpam reports whether the prediction is labelled spam
func (p *Prediction) IsSpam() bool {
	return p.Label == LabelSpam
}

// SpamProbability returns the probability of the spam class
func (p *Prediction) SpamProbability() float64 {
	return p.Probabilities[1]
}

// AnalysisResult is the full output of analyzing one message
type AnalysisResult struct {
	ProcessingID string                   `json:"processing_id"`
	Prediction   Prediction               `json:"prediction"`
	Normalized   nlp.Normalized           `json:"normalized"`
	Features     features.MessageFeatures `json:"features"`
	Report       patterns.Report          `json:"patterns"`
	Annotation   annotate.Message         `json:"annotation"`
	Explanation  explain.Explanation      `json:"explanation"`
	Cached       bool                     `json:"cached"`
	Truncated    bool                     `json:"truncated"`
	AnalyzedAt   time.Time                `json:"analyzed_at"`
}

// CacheEntry is a cached prediction keyed by the digest of the normalized text
type CacheEntry struct {
	Key             string
	Label           string
	SpamProbability float64
	ModelUsed       string
	LastSeen        time.Time
	ExpiresAt       time.Time
}

// Prediction rebuilds the cached prediction
func (e *CacheEntry) Prediction() Prediction {
	return Prediction{
		Label:         e.Label,
		Probabilities: [2]float64{1 - e.SpamProbability, e.SpamProbability},
		ModelUsed:     e.ModelUsed,
	}
}

// MessageDigest returns the cache key for a normalized text
func MessageDigest(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
