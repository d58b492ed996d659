package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mikey/spam-insight/internal/core"
	"go.uber.org/zap"
)

func entry(key string, ttl time.Duration) *core.CacheEntry {
	now := time.Now()
	return &core.CacheEntry{
		Key:             key,
		Label:           core.LabelSpam,
		SpamProbability: 0.9,
		ModelUsed:       "naive_bayes",
		LastSeen:        now,
		ExpiresAt:       now.Add(ttl),
	}
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(zap.NewNop(), 0)
	defer c.Stop()

	if _, err := c.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	if err := c.Set(ctx, entry("k", time.Hour)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Label != core.LabelSpam || got.SpamProbability != 0.9 {
		t.Errorf("got %+v", got)
	}
	if p := got.Prediction(); p.Probabilities[0] < 0.0999 || p.Probabilities[0] > 0.1001 {
		t.Errorf("ham probability: got %v, want 0.1", p.Probabilities[0])
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v after delete, want ErrNotFound", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(zap.NewNop(), 0)
	defer c.Stop()

	_ = c.Set(ctx, entry("old", -time.Minute))
	_ = c.Set(ctx, entry("fresh", time.Hour))

	if _, err := c.Get(ctx, "old"); !errors.Is(err, ErrExpired) {
		t.Errorf("got %v, want ErrExpired", err)
	}
	if err := c.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("got %d entries after cleanup, want 1", c.Len())
	}
}

func TestMemoryCacheBackgroundCleanup(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(zap.NewNop(), 10*time.Millisecond)
	defer c.Stop()

	_ = c.Set(ctx, entry("old", -time.Minute))

	deadline := time.Now().Add(2 * time.Second)
	for c.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if c.Len() != 0 {
		t.Error("background cleanup did not evict the expired entry")
	}
}

func TestSQLiteCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewSQLiteCache(t.TempDir()+"/cache.db", zap.NewNop(), 0)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	defer c.Stop()

	if _, err := c.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if err := c.Set(ctx, entry("k", time.Hour)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Set(ctx, entry("k", time.Hour)); err != nil {
		t.Fatalf("Set should replace: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ModelUsed != "naive_bayes" || got.Label != core.LabelSpam {
		t.Errorf("got %+v", got)
	}

	_ = c.Set(ctx, entry("old", -time.Minute))
	if _, err := c.Get(ctx, "old"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired entry: got %v, want ErrNotFound", err)
	}
	if err := c.Cleanup(ctx); err != nil {
		t.Errorf("Cleanup: %v", err)
	}
}
