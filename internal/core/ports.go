package core

import (
	"context"
	"time"
)

// Classifier assigns a label and class probabilities to a message
type Classifier interface {
	// Classify returns the prediction for a single message
	Classify(ctx context.Context, req *ClassificationRequest) (*Prediction, error)

	// Name identifies the model in results and logs
	Name() string
}

// CacheRepository defines the interface for caching predictions
type CacheRepository interface {
	// Get retrieves a cached entry by message digest
	Get(ctx context.Context, key string) (*CacheEntry, error)

	// Set stores a cache entry
	Set(ctx context.Context, entry *CacheEntry) error

	// Delete removes a cache entry
	Delete(ctx context.Context, key string) error

	// Cleanup removes expired entries
	Cleanup(ctx context.Context) error
}

// Preprocessor bounds and sanitizes input text before analysis
type Preprocessor interface {
	ProcessText(text string, maxSize int) string
}

// MetricsRecorder receives analysis measurements
type MetricsRecorder interface {
	ObserveAnalysis(label string, d time.Duration)
	ObserveCache(hit bool)
	ObserveError(stage string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveAnalysis(string, time.Duration) {}
func (nopRecorder) ObserveCache(bool)                     {}
func (nopRecorder) ObserveError(string)                   {}

type passthrough struct{}

func (passthrough) ProcessText(text string, _ int) string { return text }
