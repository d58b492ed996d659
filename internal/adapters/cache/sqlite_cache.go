package cache

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

var sqliteDialect = dialect{
	name: "sqlite",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS prediction_cache (
			digest TEXT PRIMARY KEY,
			label TEXT NOT NULL,
			spam_probability REAL NOT NULL,
			model_used TEXT NOT NULL,
			last_seen INTEGER NOT NULL,
			expires_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_prediction_expires_at ON prediction_cache(expires_at)`,
	},
	get: `SELECT label, spam_probability, model_used, last_seen, expires_at
		FROM prediction_cache WHERE digest = ? AND expires_at > ?`,
	upsert: `INSERT OR REPLACE INTO prediction_cache
		(digest, label, spam_probability, model_used, last_seen, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
	remove:  `DELETE FROM prediction_cache WHERE digest = ?`,
	cleanup: `DELETE FROM prediction_cache WHERE expires_at <= ?`,
}

// NewSQLiteCache creates a new SQLite cache
func NewSQLiteCache(dbPath string, logger *zap.Logger, cleanupFreq time.Duration) (*SQLCache, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// sqlite serializes writers
	db.SetMaxOpenConns(1)

	return newSQLCache(db, sqliteDialect, logger, cleanupFreq)
}
