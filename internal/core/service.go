package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mikey/spam-insight/internal/annotate"
	"github.com/mikey/spam-insight/internal/explain"
	"github.com/mikey/spam-insight/internal/features"
	"github.com/mikey/spam-insight/internal/lexicon"
	"github.com/mikey/spam-insight/internal/nlp"
	"github.com/mikey/spam-insight/internal/patterns"
	"go.uber.org/zap"
)

// ErrEmptyMessage is returned by callers that refuse to analyze blank input
var ErrEmptyMessage = errors.New("message is empty")

// ServiceOptions tunes the analysis service
type ServiceOptions struct {
	CacheEnabled bool
	CacheTTL     time.Duration
	MaxInputSize int
	DisplayLimit int
}

// AnalysisService is the core service: it normalizes a message, classifies it
// and explains the verdict with features and indicator patterns
type AnalysisService struct {
	classifier   Classifier
	cache        CacheRepository
	provider     nlp.Provider
	refs         lexicon.ReferenceSets
	preprocessor Preprocessor
	recorder     MetricsRecorder
	logger       *zap.Logger
	opts         ServiceOptions
}

// NewAnalysisService creates a new analysis service. cache, preprocessor and
// recorder may be nil
func NewAnalysisService(
	classifier Classifier,
	cache CacheRepository,
	provider nlp.Provider,
	refs lexicon.ReferenceSets,
	preprocessor Preprocessor,
	recorder MetricsRecorder,
	logger *zap.Logger,
	opts ServiceOptions,
) *AnalysisService {
	if preprocessor == nil {
		preprocessor = passthrough{}
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if cache == nil {
		opts.CacheEnabled = false
	}
	return &AnalysisService{
		classifier:   classifier,
		cache:        cache,
		provider:     provider,
		refs:         refs,
		preprocessor: preprocessor,
		recorder:     recorder,
		logger:       logger,
		opts:         opts,
	}
}

// References returns the reference word sets the service analyzes against
func (s *AnalysisService) References() lexicon.ReferenceSets {
	return s.refs
}

// Analyze runs the full pipeline on raw text
func (s *AnalysisService) Analyze(ctx context.Context, raw string) (*AnalysisResult, error) {
	start := time.Now()

	text := s.preprocessor.ProcessText(raw, s.opts.MaxInputSize)
	normalized := nlp.Normalize(text, s.provider)

	prediction, cached, err := s.predict(ctx, text, normalized)
	if err != nil {
		s.recorder.ObserveError("classify")
		return nil, err
	}

	report := patterns.Analyze(text, normalized.Tokens, s.refs.Spam, s.refs.Ham)
	feats := features.Extract(text, normalized.Tokens, s.refs.Spam, s.refs.Ham)

	result := &AnalysisResult{
		ProcessingID: uuid.New().String(),
		Prediction:   *prediction,
		Normalized:   normalized,
		Features:     feats,
		Report:       report,
		Annotation:   annotate.Annotate(text, s.refs.Spam, s.refs.Ham),
		Cached:       cached,
		Truncated:    s.opts.MaxInputSize > 0 && len(raw) > s.opts.MaxInputSize,
		AnalyzedAt:   time.Now(),
	}
	result.Explanation = explain.Summarize(explain.Input{
		IsSpam:          prediction.IsSpam(),
		SpamProbability: prediction.SpamProbability(),
		Report:          report,
		Features:        feats,
		DisplayLimit:    s.opts.DisplayLimit,
	})

	elapsed := time.Since(start)
	s.recorder.ObserveAnalysis(prediction.Label, elapsed)

	s.logger.Debug("Message analyzed",
		zap.String("processing_id", result.ProcessingID),
		zap.String("label", prediction.Label),
		zap.Float64("spam_probability", prediction.SpamProbability()),
		zap.Int("spam_indicators", report.SpamIndicators),
		zap.Int("ham_indicators", report.HamIndicators),
		zap.Int("token_count", len(normalized.Tokens)),
		zap.Bool("cached", cached),
		zap.Duration("duration", elapsed))

	return result, nil
}

// AnalyzeEmail analyzes the subject and body of an email
func (s *AnalysisService) AnalyzeEmail(ctx context.Context, email *Email) (*AnalysisResult, error) {
	return s.Analyze(ctx, email.Text())
}

// Annotate highlights reference words in raw without classifying it
func (s *AnalysisService) Annotate(raw string) annotate.Message {
	text := s.preprocessor.ProcessText(raw, s.opts.MaxInputSize)
	return annotate.Annotate(text, s.refs.Spam, s.refs.Ham)
}

func (s *AnalysisService) predict(ctx context.Context, text string, normalized nlp.Normalized) (*Prediction, bool, error) {
	key := MessageDigest(normalized.Text)

	if s.opts.CacheEnabled {
		entry, err := s.cache.Get(ctx, key)
		if err == nil {
			s.recorder.ObserveCache(true)
			s.logger.Debug("Cache hit for message", zap.String("digest", key))
			p := entry.Prediction()
			return &p, true, nil
		}
		s.recorder.ObserveCache(false)
	}

	prediction, err := s.classifier.Classify(ctx, &ClassificationRequest{Raw: text, Normalized: normalized})
	if err != nil {
		return nil, false, fmt.Errorf("failed to classify message: %w", err)
	}
	if prediction.ModelUsed == "" {
		prediction.ModelUsed = s.classifier.Name()
	}
	prediction.Label = strings.ToLower(prediction.Label)

	if s.opts.CacheEnabled {
		now := time.Now()
		entry := &CacheEntry{
			Key:             key,
			Label:           prediction.Label,
			SpamProbability: prediction.SpamProbability(),
			ModelUsed:       prediction.ModelUsed,
			LastSeen:        now,
			ExpiresAt:       now.Add(s.opts.CacheTTL),
		}
		if err := s.cache.Set(ctx, entry); err != nil {
			s.logger.Error("Failed to update cache", zap.Error(err))
		}
	}

	return prediction, false, nil
}
