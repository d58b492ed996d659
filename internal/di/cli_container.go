package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/spam-insight/internal/batch"
	"github.com/mikey/spam-insight/internal/config"
	"github.com/mikey/spam-insight/internal/core"
	"github.com/mikey/spam-insight/internal/factory"
	"github.com/mikey/spam-insight/internal/lexicon"
	"github.com/mikey/spam-insight/internal/logging"
	"github.com/mikey/spam-insight/internal/nlp"
	"github.com/mikey/spam-insight/internal/ports"
	"github.com/mikey/spam-insight/internal/utils"
)

// CLIOptions holds what the command line decides about the CLI container
type CLIOptions struct {
	ConfigFile string
	Verbose    bool
	JSONLog    bool
	Renderer   string

	// Overrides are configuration keys set explicitly on the command line,
	// e.g. "classifier.model_path"
	Overrides map[string]any
}

// BuildCLIContainer creates and configures a dependency injection container
// for the CLI. The CLI never caches predictions and records no metrics
func BuildCLIContainer(opts CLIOptions) (*dig.Container, error) {
	container := dig.New()

	// Register logger
	if err := container.Provide(func() (*zap.Logger, error) {
		return logging.InitConsoleLogger(opts.Verbose, opts.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(logger *zap.Logger) (*config.Config, error) {
		return loadCLIConfig(opts, logger)
	}); err != nil {
		return nil, err
	}

	if err := provideAnalysis(container); err != nil {
		return nil, err
	}

	// Register analysis service with no cache
	if err := container.Provide(func(
		cfg *config.Config,
		classifier core.Classifier,
		provider nlp.Provider,
		refs lexicon.ReferenceSets,
		tp *utils.TextProcessor,
		logger *zap.Logger,
	) *core.AnalysisService {
		analysisCfg := cfg.GetAnalysis()
		return core.NewAnalysisService(classifier, nil, provider, refs, tp, nil, logger, core.ServiceOptions{
			MaxInputSize: analysisCfg.MaxInputSize,
			DisplayLimit: analysisCfg.DisplayLimit,
		})
	}); err != nil {
		return nil, err
	}

	// Register batch runner
	if err := container.Provide(func(cfg *config.Config, svc *core.AnalysisService, logger *zap.Logger) *batch.Runner {
		return batch.NewRunner(svc, cfg.GetInt("batch.workers"), logger)
	}); err != nil {
		return nil, err
	}

	// Register email filter
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger, svc *core.AnalysisService) *factory.FilterFactory {
		return factory.NewFilterFactory(cfg, logger, svc, nil)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.FilterFactory) (ports.EmailFilter, error) {
		return f.CreateEmailFilter()
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// loadCLIConfig reads the config file when one is given, falling back to the
// standard search paths, then applies the command line settings
func loadCLIConfig(opts CLIOptions, logger *zap.Logger) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.ConfigFile != "" {
		cfg, err = config.NewFromFile(opts.ConfigFile)
	} else {
		cfg, err = config.New()
	}
	if err != nil {
		return nil, err
	}
	if used := cfg.GetViper().ConfigFileUsed(); used != "" {
		logger.Info("Loaded configuration from file", zap.String("file", used))
	}

	cfg.Set("server.filter_type", "cli")
	cfg.Set("cli.verbose", opts.Verbose)
	if opts.Renderer != "" {
		cfg.Set("cli.renderer", opts.Renderer)
	}
	for key, value := range opts.Overrides {
		cfg.Set(key, value)
	}
	return cfg, nil
}
