package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gocentral/gocentral/internal/central"
)

// QuotaUsage is one recorded rate-limit observation.
type QuotaUsage struct {
	Path            string
	StatusCode      int
	LimitSecond     int
	RemainingSecond int
	LimitDay        int
	RemainingDay    int
	ObservedAt      time.Time
}

// RecordQuotaUsage persists the rate-limit snapshot of one API response.
func (s *Store) RecordQuotaUsage(ctx context.Context, path string, statusCode int, status central.RateLimitStatus) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}

	observed := status.UpdatedAt
	if observed.IsZero() {
		observed = time.Now().UTC()
	}

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO quota_usage (path, status_code, limit_second, remaining_second, limit_day, remaining_day, observed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, path, statusCode, status.LimitSecond, status.RemainingSecond, status.LimitDay, status.RemainingDay, observed.UTC().Unix())
	if err != nil {
		return fmt.Errorf("record quota usage: %w", err)
	}

	return nil
}

// LatestQuotaUsage returns the most recent observations, newest first.
func (s *Store) LatestQuotaUsage(ctx context.Context, limit int) ([]QuotaUsage, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT path, status_code, limit_second, remaining_second, limit_day, remaining_day, observed_at
		FROM quota_usage
		ORDER BY observed_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch quota usage: %w", err)
	}
	defer rows.Close() // nolint:errcheck // best-effort cleanup on SQL rows

	var usage []QuotaUsage
	for rows.Next() {
		var (
			entry      QuotaUsage
			observedAt int64
		)
		if err := rows.Scan(&entry.Path, &entry.StatusCode, &entry.LimitSecond, &entry.RemainingSecond, &entry.LimitDay, &entry.RemainingDay, &observedAt); err != nil {
			return nil, fmt.Errorf("scan quota usage: %w", err)
		}
		entry.ObservedAt = time.Unix(observedAt, 0).UTC()
		usage = append(usage, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch quota usage: %w", err)
	}

	return usage, nil
}

// PruneQuotaUsage removes observations older than the cutoff and returns
// the number of deleted rows.
func (s *Store) PruneQuotaUsage(ctx context.Context, cutoff time.Time) (int64, error) {
	if s == nil || s.DB == nil {
		return 0, errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM quota_usage WHERE observed_at < ?`, cutoff.UTC().Unix())
	if err != nil {
		return 0, fmt.Errorf("prune quota usage: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return deleted, nil
}
