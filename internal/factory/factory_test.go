package factory

import (
	"testing"

	"github.com/mikey/spam-insight/internal/adapters/cache"
	"github.com/mikey/spam-insight/internal/config"
	"go.uber.org/zap"
)

func testConfig(settings map[string]any) *config.Config {
	cfg := config.NewFromViper(config.NewEmptyViper())
	for k, v := range settings {
		cfg.Set(k, v)
	}
	return cfg
}

func TestCreateCacheRepository(t *testing.T) {
	tests := []struct {
		name     string
		settings map[string]any
		wantNil  bool
		wantErr  bool
	}{
		{"memory", map[string]any{"cache.type": "memory"}, false, false},
		{"disabled", map[string]any{"cache.enabled": false}, true, false},
		{"unsupported", map[string]any{"cache.type": "memcached"}, true, true},
		{"bad cleanup frequency", map[string]any{"cache.cleanup_frequency": "often"}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := NewCacheFactory(testConfig(tt.settings), zap.NewNop()).CreateCacheRepository()
			if (err != nil) != tt.wantErr {
				t.Fatalf("got error %v, want error %v", err, tt.wantErr)
			}
			if (repo == nil) != tt.wantNil {
				t.Errorf("got repo %v, want nil %v", repo, tt.wantNil)
			}
			if mc, ok := repo.(*cache.MemoryCache); ok {
				mc.Stop()
			}
		})
	}
}

func TestCreateClassifierErrors(t *testing.T) {
	tests := []struct {
		name     string
		settings map[string]any
	}{
		{"unsupported provider", map[string]any{"classifier.provider": "svm"}},
		{"missing model", map[string]any{"classifier.model_path": "/nonexistent/model.json"}},
		{"openai without key", map[string]any{"classifier.provider": "openai"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := zap.NewNop()
			f := NewClassifierFactory(testConfig(tt.settings), logger, NewNLPFactory(testConfig(nil), logger).CreateTextProcessor())
			if _, err := f.CreateClassifier(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestCreateEmailFilterUnsupported(t *testing.T) {
	f := NewFilterFactory(testConfig(map[string]any{"server.filter_type": "milter"}), zap.NewNop(), nil, nil)
	if _, err := f.CreateEmailFilter(); err == nil {
		t.Error("expected an error for an unsupported filter type")
	}
	if _, err := f.CreateServer(); err == nil {
		t.Error("expected an error for an unsupported server type")
	}
}
