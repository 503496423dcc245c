package store

import (
	"context"
	"errors"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS tokens (
		customer_id TEXT NOT NULL,
		client_id TEXT NOT NULL,
		access_token TEXT NOT NULL,
		refresh_token TEXT NOT NULL,
		token_type TEXT,
		expires_in INTEGER NOT NULL DEFAULT 0,
		obtained_at INTEGER NOT NULL,
		PRIMARY KEY(customer_id, client_id)
	);`,
	`CREATE TABLE IF NOT EXISTS quota_usage (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path TEXT NOT NULL,
		status_code INTEGER NOT NULL,
		limit_second INTEGER NOT NULL,
		remaining_second INTEGER NOT NULL,
		limit_day INTEGER NOT NULL,
		remaining_day INTEGER NOT NULL,
		observed_at INTEGER NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_quota_usage_observed ON quota_usage(observed_at);`,
	`CREATE INDEX IF NOT EXISTS idx_quota_usage_path ON quota_usage(path, observed_at);`,
}

// Migrate ensures the required database tables exist.
func (s *Store) Migrate(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	for _, stmt := range schemaStatements {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store migration failed: %w", err)
		}
	}

	return nil
}
