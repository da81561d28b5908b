package ratelimit

import (
	"context"
	"time"
)

// Repository records one attempt against a counter. Implementations run
// Apply inside a transactional read-modify-write so concurrent attempts
// against the same (operation, origin) pair are serialized.
type Repository interface {
	Take(ctx context.Context, operation, origin string, limit int, window time.Duration, now time.Time) (Decision, error)
}
