package ports

import (
	"context"

	"github.com/mikey/spam-insight/internal/core"
)

// Server is a long-running front end of the analysis service
type Server interface {
	// Start starts serving in the background
	Start() error

	// Stop stops serving
	Stop() error
}

// EmailFilter is a Server that analyzes whole emails
type EmailFilter interface {
	Server

	// ProcessEmail processes an email and returns the analysis
	ProcessEmail(ctx context.Context, email *core.Email) (*core.AnalysisResult, error)
}
