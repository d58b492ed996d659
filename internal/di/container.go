package di

import (
	"net/http"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/spam-insight/internal/config"
	"github.com/mikey/spam-insight/internal/core"
	"github.com/mikey/spam-insight/internal/factory"
	"github.com/mikey/spam-insight/internal/lexicon"
	"github.com/mikey/spam-insight/internal/logging"
	"github.com/mikey/spam-insight/internal/metrics"
	"github.com/mikey/spam-insight/internal/nlp"
	"github.com/mikey/spam-insight/internal/ports"
	"github.com/mikey/spam-insight/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
// for the filter daemon
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	if err := provideAnalysis(container); err != nil {
		return nil, err
	}

	// Register cache repository
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.CacheFactory) (core.CacheRepository, error) {
		return f.CreateCacheRepository()
	}); err != nil {
		return nil, err
	}

	// Register metrics
	if err := container.Provide(metrics.NewRecorder); err != nil {
		return nil, err
	}
	if err := container.Provide(func(r *metrics.Recorder) http.Handler {
		return r.Handler()
	}); err != nil {
		return nil, err
	}

	// Register analysis service
	if err := container.Provide(func(
		cfg *config.Config,
		cf *factory.CacheFactory,
		classifier core.Classifier,
		repo core.CacheRepository,
		provider nlp.Provider,
		refs lexicon.ReferenceSets,
		tp *utils.TextProcessor,
		recorder *metrics.Recorder,
		logger *zap.Logger,
	) (*core.AnalysisService, error) {
		ttl, err := cf.GetCacheTTL()
		if err != nil {
			return nil, err
		}
		analysisCfg := cfg.GetAnalysis()
		return core.NewAnalysisService(classifier, repo, provider, refs, tp, recorder, logger, core.ServiceOptions{
			CacheEnabled: cf.IsCacheEnabled(),
			CacheTTL:     ttl,
			MaxInputSize: analysisCfg.MaxInputSize,
			DisplayLimit: analysisCfg.DisplayLimit,
		}), nil
	}); err != nil {
		return nil, err
	}

	// Register server
	if err := container.Provide(factory.NewFilterFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.FilterFactory) (ports.Server, error) {
		return f.CreateServer()
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// provideAnalysis registers the text processor, language provider, reference
// word sets and classifier shared by the daemon and the CLI
func provideAnalysis(container *dig.Container) error {
	if err := container.Provide(factory.NewNLPFactory); err != nil {
		return err
	}
	if err := container.Provide(func(f *factory.NLPFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return err
	}
	if err := container.Provide(func(f *factory.NLPFactory) nlp.Provider {
		return f.CreateProvider()
	}); err != nil {
		return err
	}
	if err := container.Provide(func(f *factory.NLPFactory) lexicon.ReferenceSets {
		return f.CreateReferenceSets()
	}); err != nil {
		return err
	}

	if err := container.Provide(factory.NewClassifierFactory); err != nil {
		return err
	}
	return container.Provide(func(f *factory.ClassifierFactory) (core.Classifier, error) {
		return f.CreateClassifier()
	})
}
