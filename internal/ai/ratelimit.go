package ai

import (
	"context"
	"database/sql"
	"time"
)

// DefaultDailyLimit is the number of AI requests a caller gets per day.
const DefaultDailyLimit = 20

// UsageStore counts AI requests per caller per day.
type UsageStore interface {
	// Increment bumps the counter for (key, day) and returns the new count.
	Increment(ctx context.Context, key string, day time.Time) (int, error)
	// PruneBefore removes counters older than the cutoff day.
	PruneBefore(ctx context.Context, cutoff time.Time) error
}

// PostgresUsageStore keeps the counters in the ai_usage table so limits
// survive restarts and hold across instances sharing the database.
type PostgresUsageStore struct {
	db *sql.DB
}

func NewPostgresUsageStore(db *sql.DB) *PostgresUsageStore {
	return &PostgresUsageStore{db: db}
}

func (s *PostgresUsageStore) Increment(ctx context.Context, key string, day time.Time) (int, error) {
	query := `
		INSERT INTO ai_usage (usage_key, usage_day, request_count)
		VALUES ($1, $2, 1)
		ON CONFLICT (usage_key, usage_day)
		DO UPDATE SET request_count = ai_usage.request_count + 1
		RETURNING request_count`
	var count int
	err := s.db.QueryRowContext(ctx, query, key, day.Format("2006-01-02")).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *PostgresUsageStore) PruneBefore(ctx context.Context, cutoff time.Time) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM ai_usage WHERE usage_day < $1`, cutoff.Format("2006-01-02"))
	return err
}

// RateLimiter enforces the daily cap on top of a UsageStore.
type RateLimiter struct {
	store UsageStore
	limit int
	now   func() time.Time
}

func NewRateLimiter(store UsageStore, limit int) *RateLimiter {
	if limit <= 0 {
		limit = DefaultDailyLimit
	}
	return &RateLimiter{store: store, limit: limit, now: time.Now}
}

// Allow records one request for key and reports whether it is within the
// daily limit. The request is counted even when rejected.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	day := l.now().UTC().Truncate(24 * time.Hour)
	count, err := l.store.Increment(ctx, key, day)
	if err != nil {
		return false, err
	}
	return count <= l.limit, nil
}

// Prune deletes counters older than two days; ran from the cron scheduler.
func (l *RateLimiter) Prune(ctx context.Context) error {
	cutoff := l.now().UTC().AddDate(0, 0, -2)
	return l.store.PruneBefore(ctx, cutoff)
}
