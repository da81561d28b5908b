package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lightsout-league/pickem/internal/domain/ratelimit"
)

type rateLimitTableModel struct {
	Operation string    `db:"operation"`
	Origin    string    `db:"origin"`
	Count     int       `db:"count"`
	ResetAt   time.Time `db:"reset_at"`
}

// RateLimitRepository serializes attempts per (operation, origin) with a
// row lock, so concurrent callers observe a consistent counter.
type RateLimitRepository struct {
	db *sqlx.DB
}

func NewRateLimitRepository(db *sqlx.DB) *RateLimitRepository {
	return &RateLimitRepository{db: db}
}

func (r *RateLimitRepository) Take(ctx context.Context, operation, origin string, limit int, window time.Duration, now time.Time) (ratelimit.Decision, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return ratelimit.Decision{}, fmt.Errorf("begin tx take rate limit: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var row rateLimitTableModel
	err = tx.GetContext(ctx, &row,
		`SELECT operation, origin, count, reset_at FROM rate_limit_counters
WHERE operation = $1 AND origin = $2
FOR UPDATE`, operation, origin)
	exists := true
	if err != nil {
		if !isNotFound(err) {
			return ratelimit.Decision{}, fmt.Errorf("lock rate limit counter %s/%s: %w", operation, origin, err)
		}
		exists = false
	}

	counter := ratelimit.Counter{
		Operation: operation,
		Origin:    origin,
		Count:     row.Count,
		ResetAt:   row.ResetAt,
	}
	counter, decision := ratelimit.Apply(counter, exists, now, limit, window)

	if decision.Allowed {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO rate_limit_counters (operation, origin, count, reset_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (operation, origin)
DO UPDATE SET count = EXCLUDED.count, reset_at = EXCLUDED.reset_at`,
			counter.Operation, counter.Origin, counter.Count, counter.ResetAt); err != nil {
			return ratelimit.Decision{}, fmt.Errorf("store rate limit counter %s/%s: %w", operation, origin, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return ratelimit.Decision{}, fmt.Errorf("commit take rate limit tx: %w", err)
	}
	return decision, nil
}
