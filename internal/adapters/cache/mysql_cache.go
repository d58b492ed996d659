package cache

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

var mysqlDialect = dialect{
	name: "mysql",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS prediction_cache (
			digest CHAR(64) PRIMARY KEY,
			label VARCHAR(16) NOT NULL,
			spam_probability DOUBLE NOT NULL,
			model_used VARCHAR(255) NOT NULL,
			last_seen BIGINT NOT NULL,
			expires_at BIGINT NOT NULL,
			INDEX idx_prediction_expires_at (expires_at)
		)`,
	},
	get: `SELECT label, spam_probability, model_used, last_seen, expires_at
		FROM prediction_cache WHERE digest = ? AND expires_at > ?`,
	upsert: `INSERT INTO prediction_cache
		(digest, label, spam_probability, model_used, last_seen, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE label = VALUES(label), spam_probability = VALUES(spam_probability),
			model_used = VALUES(model_used), last_seen = VALUES(last_seen), expires_at = VALUES(expires_at)`,
	remove:  `DELETE FROM prediction_cache WHERE digest = ?`,
	cleanup: `DELETE FROM prediction_cache WHERE expires_at <= ?`,
}

// NewMySQLCache creates a new MySQL cache
func NewMySQLCache(dsn string, logger *zap.Logger, cleanupFreq time.Duration) (*SQLCache, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	return newSQLCache(db, mysqlDialect, logger, cleanupFreq)
}
