package factory

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/mikey/spam-insight/internal/adapters/filter"
	"github.com/mikey/spam-insight/internal/adapters/httpapi"
	"github.com/mikey/spam-insight/internal/annotate"
	"github.com/mikey/spam-insight/internal/config"
	"github.com/mikey/spam-insight/internal/core"
	"github.com/mikey/spam-insight/internal/ports"
	"go.uber.org/zap"
)

// FilterFactory creates the front ends of the analysis service
type FilterFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *core.AnalysisService
	metrics http.Handler
	out     io.Writer
}

// NewFilterFactory creates a new filter factory. metrics may be nil
func NewFilterFactory(cfg *config.Config, logger *zap.Logger, service *core.AnalysisService, metrics http.Handler) *FilterFactory {
	return &FilterFactory{
		cfg:     cfg,
		logger:  logger,
		service: service,
		metrics: metrics,
		out:     os.Stdout,
	}
}

// CreateServer creates the long-running server named by server.filter_type
func (f *FilterFactory) CreateServer() (ports.Server, error) {
	filterType := f.cfg.GetString("server.filter_type")

	switch filterType {
	case "postfix":
		return f.CreateEmailFilter()
	case "http":
		httpCfg := f.cfg.GetHTTP()
		handler := httpapi.New(f.service, f.cfg.GetInt("batch.workers"), f.metrics, f.logger)
		return httpapi.NewServer(handler, f.logger, httpCfg.ListenAddress, httpCfg.Mode), nil
	default:
		return nil, fmt.Errorf("unsupported filter type: %s", filterType)
	}
}

// CreateEmailFilter creates an email filter based on the configuration
func (f *FilterFactory) CreateEmailFilter() (ports.EmailFilter, error) {
	filterType := f.cfg.GetString("server.filter_type")

	switch filterType {
	case "postfix":
		return filter.NewPostfixFilter(f.service, f.logger, f.cfg.GetServer()), nil
	case "cli":
		renderer, err := annotate.NewRenderer(f.cfg.GetString("cli.renderer"))
		if err != nil {
			return nil, err
		}
		return filter.NewCliFilter(f.service, f.logger, f.out, renderer, f.cfg.GetBool("cli.verbose")), nil
	default:
		return nil, fmt.Errorf("unsupported filter type: %s", filterType)
	}
}
