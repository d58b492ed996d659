// Package batch analyzes many independent messages on a bounded worker pool
package batch

import (
	"context"
	"errors"
	"sync"

	"github.com/mikey/spam-insight/internal/core"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is used when no positive worker count is configured
const DefaultWorkers = 4

// Status of one message in a batch
const (
	StatusAnalyzed = "analyzed"
	StatusFailed   = "failed"
	StatusSkipped  = "skipped"
)

// Analyzer is the single-message analysis a batch fans out
type Analyzer interface {
	Analyze(ctx context.Context, raw string) (*core.AnalysisResult, error)
}

// Outcome is the result for the message at Index
type Outcome struct {
	Index  int                  `json:"index"`
	Status string               `json:"status"`
	Result *core.AnalysisResult `json:"result,omitempty"`
	Error  string               `json:"error,omitempty"`
}

// Summary counts outcomes by status and label
type Summary struct {
	Total    int `json:"total"`
	Analyzed int `json:"analyzed"`
	Failed   int `json:"failed"`
	Skipped  int `json:"skipped"`
	Spam     int `json:"spam"`
	Ham      int `json:"ham"`
}

// Runner drives a batch
type Runner struct {
	analyzer Analyzer
	workers  int
	logger   *zap.Logger
}

// NewRunner creates a batch runner
func NewRunner(analyzer Analyzer, workers int, logger *zap.Logger) *Runner {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Runner{analyzer: analyzer, workers: workers, logger: logger}
}

// Run analyzes texts in parallel and returns one outcome per text, in input
// order. Cancelling ctx stops dispatching: messages already started run to
// completion and the rest are reported as skipped. The returned error is
// ctx.Err() when the batch was interrupted
func (r *Runner) Run(ctx context.Context, texts []string) ([]Outcome, error) {
	outcomes := make([]Outcome, len(texts))
	for i := range outcomes {
		outcomes[i] = Outcome{Index: i, Status: StatusSkipped}
	}

	// in-flight messages are never interrupted
	work := context.WithoutCancel(ctx)

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(r.workers)

	for i := range texts {
		if ctx.Err() != nil {
			break
		}
		text := texts[i]

		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			result, err := r.analyzer.Analyze(work, text)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				outcomes[i].Status = StatusFailed
				outcomes[i].Error = err.Error()
				r.logger.Warn("Batch message failed", zap.Int("index", i), zap.Error(err))
				return nil
			}
			outcomes[i].Status = StatusAnalyzed
			outcomes[i].Result = result
			return nil
		})
	}

	_ = g.Wait()

	summary := Summarize(outcomes)
	r.logger.Info("Batch finished",
		zap.Int("total", summary.Total),
		zap.Int("analyzed", summary.Analyzed),
		zap.Int("failed", summary.Failed),
		zap.Int("skipped", summary.Skipped))

	if err := ctx.Err(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}

// Summarize counts outcomes
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		switch o.Status {
		case StatusAnalyzed:
			s.Analyzed++
			if o.Result != nil && o.Result.Prediction.IsSpam() {
				s.Spam++
			} else {
				s.Ham++
			}
		case StatusFailed:
			s.Failed++
		default:
			s.Skipped++
		}
	}
	return s
}

// IsInterrupted reports whether err came from a cancelled batch
func IsInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
