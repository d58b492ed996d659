// Package httpapi exposes the analysis service over a JSON HTTP API
package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikey/spam-insight/internal/annotate"
	"github.com/mikey/spam-insight/internal/batch"
	"github.com/mikey/spam-insight/internal/core"
	"go.uber.org/zap"
)

// MaxBatchSize is the largest number of messages accepted by one batch request
const MaxBatchSize = 1000

// Service is the part of the analysis service the API needs
type Service interface {
	Analyze(ctx context.Context, raw string) (*core.AnalysisResult, error)
	Annotate(raw string) annotate.Message
}

// Handler registers the API routes on a gin engine
type Handler interface {
	RegisterRoutes(r *gin.Engine)
}

type handler struct {
	svc     Service
	runner  *batch.Runner
	metrics http.Handler
	l       *zap.Logger
}

// New creates the API handler. metrics may be nil, in which case /metrics is
// not registered
func New(svc Service, workers int, metrics http.Handler, l *zap.Logger) Handler {
	return &handler{
		svc:     svc,
		runner:  batch.NewRunner(svc, workers, l),
		metrics: metrics,
		l:       l,
	}
}
