package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	c := NewFromViper(NewEmptyViper())

	if got := c.GetClassifier().Provider; got != "naive_bayes" {
		t.Errorf("classifier.provider: got %q, want naive_bayes", got)
	}
	if got := c.GetClassifier().Threshold; got != 0.5 {
		t.Errorf("classifier.threshold: got %v, want 0.5", got)
	}
	if got := c.GetAnalysis().DisplayLimit; got != 10 {
		t.Errorf("analysis.display_limit: got %d, want 10", got)
	}
	if got := c.GetServer().Headers.Indicators; got != "X-Spam-Indicators" {
		t.Errorf("server.headers.indicators: got %q", got)
	}
	ttl, err := c.GetDuration("cache.ttl")
	if err != nil || ttl != 24*time.Hour {
		t.Errorf("cache.ttl: got %v, %v", ttl, err)
	}
}

func TestNewFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("classifier:\n  provider: openai\n  threshold: 0.8\nbatch:\n  workers: 9\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := NewFromFile(path)
	if err != nil {
		t.Fatalf("NewFromFile: %v", err)
	}
	if got := c.GetClassifier(); got.Provider != "openai" || got.Threshold != 0.8 {
		t.Errorf("got %+v", got)
	}
	if got := c.GetInt("batch.workers"); got != 9 {
		t.Errorf("batch.workers: got %d, want 9", got)
	}
	if got := c.GetString("cache.type"); got != "memory" {
		t.Errorf("defaults should survive a partial file, got cache.type %q", got)
	}
}

func TestEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("http:\n  mode: debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SPAM_INSIGHT_HTTP_MODE", "test")

	c, err := NewFromFile(path)
	if err != nil {
		t.Fatalf("NewFromFile: %v", err)
	}
	if got := c.GetHTTP().Mode; got != "test" {
		t.Errorf("http.mode: got %q, want test", got)
	}
}

func TestInvalidDuration(t *testing.T) {
	c := NewFromViper(NewEmptyViper())
	c.Set("cache.ttl", "soon")
	if _, err := c.GetDuration("cache.ttl"); err == nil {
		t.Error("expected an error for an invalid duration")
	}
}

func TestMissingFile(t *testing.T) {
	if _, err := NewFromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
