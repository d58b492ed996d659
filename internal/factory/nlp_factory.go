package factory

import (
	"github.com/mikey/spam-insight/internal/config"
	"github.com/mikey/spam-insight/internal/lexicon"
	"github.com/mikey/spam-insight/internal/nlp"
	"github.com/mikey/spam-insight/internal/utils"
	"go.uber.org/zap"
)

// NLPFactory creates the input text processor, language provider and
// reference word sets
type NLPFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewNLPFactory creates a new NLPFactory
func NewNLPFactory(cfg *config.Config, logger *zap.Logger) *NLPFactory {
	return &NLPFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateProvider creates the English provider, with the stopword list
// replaced when nlp.stopwords_path is set. An unreadable override falls back
// to the built-in list
func (f *NLPFactory) CreateProvider() nlp.Provider {
	path := f.cfg.GetLexicon().StopwordsPath
	if path == "" {
		return nlp.NewEnglish()
	}

	words, err := nlp.LoadStopwords(path)
	if err != nil {
		f.logger.Warn("Failed to load stopwords, using built-in list",
			zap.String("path", path),
			zap.Error(err))
		return nlp.NewEnglish()
	}
	f.logger.Info("Loaded stopwords", zap.String("path", path), zap.Int("count", len(words)))
	return nlp.NewEnglishWithStopwords(words)
}

// CreateReferenceSets loads the spam and ham word lists. Missing lists are
// empty
func (f *NLPFactory) CreateReferenceSets() lexicon.ReferenceSets {
	lexCfg := f.cfg.GetLexicon()
	return lexicon.LoadReferenceSets(lexCfg.SpamWordsPath, lexCfg.HamWordsPath, f.logger)
}

// CreateTextProcessor creates the processor that caps and sanitizes input
func (f *NLPFactory) CreateTextProcessor() *utils.TextProcessor {
	return utils.NewTextProcessor(f.logger)
}
