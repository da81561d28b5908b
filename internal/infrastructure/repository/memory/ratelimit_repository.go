package memory

import (
	"context"
	"sync"
	"time"

	"github.com/lightsout-league/pickem/internal/domain/ratelimit"
)

type RateLimitRepository struct {
	mu       sync.Mutex
	counters map[string]ratelimit.Counter
}

func NewRateLimitRepository() *RateLimitRepository {
	return &RateLimitRepository{counters: make(map[string]ratelimit.Counter)}
}

func (r *RateLimitRepository) Take(_ context.Context, operation, origin string, limit int, window time.Duration, now time.Time) (ratelimit.Decision, error) {
	key := operation + "\x00" + origin

	r.mu.Lock()
	defer r.mu.Unlock()

	counter, exists := r.counters[key]
	counter.Operation = operation
	counter.Origin = origin
	counter, decision := ratelimit.Apply(counter, exists, now, limit, window)
	if decision.Allowed {
		r.counters[key] = counter
	}
	return decision, nil
}
