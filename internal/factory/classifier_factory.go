package factory

import (
	"fmt"

	"github.com/mikey/spam-insight/internal/adapters/bedrock"
	"github.com/mikey/spam-insight/internal/adapters/gemini"
	"github.com/mikey/spam-insight/internal/adapters/naivebayes"
	"github.com/mikey/spam-insight/internal/adapters/openai"
	"github.com/mikey/spam-insight/internal/config"
	"github.com/mikey/spam-insight/internal/core"
	"github.com/mikey/spam-insight/internal/utils"
	"go.uber.org/zap"
)

// ClassifierFactory creates the configured classifier
type ClassifierFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewClassifierFactory creates a new classifier factory
func NewClassifierFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *ClassifierFactory {
	return &ClassifierFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateClassifier creates a classifier based on the configuration. A
// classifier that cannot be created is fatal to the caller
func (f *ClassifierFactory) CreateClassifier() (core.Classifier, error) {
	classifierCfg := f.cfg.GetClassifier()

	switch classifierCfg.Provider {
	case "naive_bayes", "":
		model, err := naivebayes.LoadModel(classifierCfg.ModelPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load classifier model: %w", err)
		}
		f.logger.Info("Loaded naive Bayes model",
			zap.String("path", classifierCfg.ModelPath),
			zap.Int("vocabulary_size", len(model.Vocabulary)),
			zap.Bool("tfidf", len(model.IDF) > 0))
		return naivebayes.NewClassifier(model, f.logger), nil
	case "bedrock":
		return bedrock.NewFactory(f.cfg, f.logger, f.textProcessor).CreateClassifier()
	case "gemini":
		return gemini.NewFactory(f.cfg, f.logger, f.textProcessor).CreateClassifier()
	case "openai":
		return openai.NewFactory(f.cfg, f.logger, f.textProcessor).CreateClassifier()
	default:
		return nil, fmt.Errorf("unsupported classifier provider: %s", classifierCfg.Provider)
	}
}
