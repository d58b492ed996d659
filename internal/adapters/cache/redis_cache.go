package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mikey/spam-insight/internal/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisKeyPrefix namespaces prediction keys
const RedisKeyPrefix = "spam_insight:prediction:"

type redisEntry struct {
	Label           string  `json:"label"`
	SpamProbability float64 `json:"spam_probability"`
	ModelUsed       string  `json:"model_used"`
	LastSeen        int64   `json:"last_seen"`
	ExpiresAt       int64   `json:"expires_at"`
}

// RedisCache is a Redis implementation of the CacheRepository interface.
// Expiry is delegated to Redis key TTLs
type RedisCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisCache connects to Redis and creates a new cache
func NewRedisCache(addr, password string, db int, logger *zap.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{client: client, logger: logger}, nil
}

// Get retrieves a cached entry by message digest
func (c *RedisCache) Get(ctx context.Context, key string) (*core.CacheEntry, error) {
	data, err := c.client.Get(ctx, RedisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query redis cache: %w", err)
	}

	var stored redisEntry
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode redis cache entry: %w", err)
	}

	return &core.CacheEntry{
		Key:             key,
		Label:           stored.Label,
		SpamProbability: stored.SpamProbability,
		ModelUsed:       stored.ModelUsed,
		LastSeen:        time.Unix(stored.LastSeen, 0),
		ExpiresAt:       time.Unix(stored.ExpiresAt, 0),
	}, nil
}

// Set stores a cache entry with the remaining lifetime as its TTL
func (c *RedisCache) Set(ctx context.Context, entry *core.CacheEntry) error {
	ttl := time.Until(entry.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(redisEntry{
		Label:           entry.Label,
		SpamProbability: entry.SpamProbability,
		ModelUsed:       entry.ModelUsed,
		LastSeen:        entry.LastSeen.Unix(),
		ExpiresAt:       entry.ExpiresAt.Unix(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode redis cache entry: %w", err)
	}

	if err := c.client.Set(ctx, RedisKeyPrefix+entry.Key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store redis cache entry: %w", err)
	}
	return nil
}

// Delete removes a cache entry
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, RedisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// Cleanup is a no-op: Redis evicts expired keys itself
func (c *RedisCache) Cleanup(context.Context) error {
	return nil
}

// Stop closes the Redis connection
func (c *RedisCache) Stop() {
	if err := c.client.Close(); err != nil {
		c.logger.Error("Failed to close Redis client", zap.Error(err))
	}
}
