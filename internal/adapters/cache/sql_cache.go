package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mikey/spam-insight/internal/core"
	"go.uber.org/zap"
)

// dialect holds the statements one SQL backend needs. Timestamps are stored
// as unix seconds so every driver compares them the same way
type dialect struct {
	name    string
	schema  []string
	get     string
	upsert  string
	remove  string
	cleanup string
}

// SQLCache is a database/sql implementation of the CacheRepository interface
type SQLCache struct {
	db          *sql.DB
	d           dialect
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
	stopOnce    sync.Once
}

func newSQLCache(db *sql.DB, d dialect, logger *zap.Logger, cleanupFreq time.Duration) (*SQLCache, error) {
	for _, stmt := range d.schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize %s cache schema: %w", d.name, err)
		}
	}

	cache := &SQLCache{
		db:          db,
		d:           d,
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	if cleanupFreq > 0 {
		go runCleanup(cache, cleanupFreq, cache.stopCh, logger)
	}

	return cache, nil
}

// Get retrieves a cached entry by message digest
func (c *SQLCache) Get(ctx context.Context, key string) (*core.CacheEntry, error) {
	var (
		entry               core.CacheEntry
		lastSeen, expiresAt int64
	)
	err := c.db.QueryRowContext(ctx, c.d.get, key, time.Now().Unix()).
		Scan(&entry.Label, &entry.SpamProbability, &entry.ModelUsed, &lastSeen, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query %s cache: %w", c.d.name, err)
	}

	entry.Key = key
	entry.LastSeen = time.Unix(lastSeen, 0)
	entry.ExpiresAt = time.Unix(expiresAt, 0)
	return &entry, nil
}

// Set stores a cache entry
func (c *SQLCache) Set(ctx context.Context, entry *core.CacheEntry) error {
	_, err := c.db.ExecContext(ctx, c.d.upsert,
		entry.Key, entry.Label, entry.SpamProbability, entry.ModelUsed,
		entry.LastSeen.Unix(), entry.ExpiresAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to store %s cache entry: %w", c.d.name, err)
	}
	return nil
}

// Delete removes a cache entry
func (c *SQLCache) Delete(ctx context.Context, key string) error {
	if _, err := c.db.ExecContext(ctx, c.d.remove, key); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// Cleanup removes expired entries
func (c *SQLCache) Cleanup(ctx context.Context) error {
	result, err := c.db.ExecContext(ctx, c.d.cleanup, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to clean up expired entries: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		c.logger.Warn("Failed to get rows affected during cleanup", zap.Error(err))
	} else {
		c.logger.Debug("Cleaned up expired cache entries",
			zap.String("backend", c.d.name),
			zap.Int64("expired_count", rowsAffected))
	}

	return nil
}

// Stop stops the background cleanup task and closes the database connection
func (c *SQLCache) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
		if err := c.db.Close(); err != nil {
			c.logger.Error("Failed to close cache database", zap.String("backend", c.d.name), zap.Error(err))
		}
	})
}
