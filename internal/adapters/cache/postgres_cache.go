package cache

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

var postgresDialect = dialect{
	name: "postgres",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS prediction_cache (
			digest CHAR(64) PRIMARY KEY,
			label VARCHAR(16) NOT NULL,
			spam_probability DOUBLE PRECISION NOT NULL,
			model_used TEXT NOT NULL,
			last_seen BIGINT NOT NULL,
			expires_at BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_prediction_expires_at ON prediction_cache(expires_at)`,
	},
	get: `SELECT label, spam_probability, model_used, last_seen, expires_at
		FROM prediction_cache WHERE digest = $1 AND expires_at > $2`,
	upsert: `INSERT INTO prediction_cache
		(digest, label, spam_probability, model_used, last_seen, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (digest) DO UPDATE SET label = EXCLUDED.label,
			spam_probability = EXCLUDED.spam_probability, model_used = EXCLUDED.model_used,
			last_seen = EXCLUDED.last_seen, expires_at = EXCLUDED.expires_at`,
	remove:  `DELETE FROM prediction_cache WHERE digest = $1`,
	cleanup: `DELETE FROM prediction_cache WHERE expires_at <= $1`,
}

// NewPostgresCache creates a new PostgreSQL cache
func NewPostgresCache(dsn string, logger *zap.Logger, cleanupFreq time.Duration) (*SQLCache, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	return newSQLCache(db, postgresDialect, logger, cleanupFreq)
}
