package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/lightsout-league/pickem/internal/domain/ratelimit"
)

// Operation names guarded by the shared fixed-window limiter.
const (
	OpManualRecompute    = "manual_sync"
	OpSendAuthCode       = "send_auth_code"
	OpValidateInvitation = "validate_invitation"
	OpPasswordReset      = "password_reset"

	// Per-email cooldown on verification dispatch, keyed by the address
	// instead of the caller origin.
	opAuthCodeEmailCooldown = "send_auth_code_email"
)

type limitRule struct {
	Limit  int
	Window time.Duration
}

var limitRules = map[string]limitRule{
	OpManualRecompute:       {Limit: 5, Window: 300 * time.Second},
	OpSendAuthCode:          {Limit: 3, Window: 600 * time.Second},
	OpValidateInvitation:    {Limit: 5, Window: 600 * time.Second},
	OpPasswordReset:         {Limit: 3, Window: 600 * time.Second},
	opAuthCodeEmailCooldown: {Limit: 1, Window: 60 * time.Second},
}

// RateLimiter applies the per-operation fixed-window rules on top of the
// transactional counter store. It is the system's only generic
// concurrency-control primitive and is shared by every guarded
// operation.
type RateLimiter struct {
	repo ratelimit.Repository
	now  func() time.Time
}

func NewRateLimiter(repo ratelimit.Repository) *RateLimiter {
	return &RateLimiter{repo: repo, now: time.Now}
}

// Check records one attempt for (operation, origin) and returns a
// RateLimitError when the window is exhausted.
func (l *RateLimiter) Check(ctx context.Context, operation, origin string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RateLimiter.Check")
	defer span.End()

	rule, ok := limitRules[operation]
	if !ok {
		return fmt.Errorf("%w: unknown rate limit operation %q", ErrInvalidInput, operation)
	}
	if origin == "" {
		origin = "unknown"
	}

	decision, err := l.repo.Take(ctx, operation, origin, rule.Limit, rule.Window, l.now().UTC())
	if err != nil {
		return fmt.Errorf("take rate limit counter %s: %w", operation, err)
	}
	if !decision.Allowed {
		return &RateLimitError{Operation: operation, RetryAfter: decision.RetryAfter}
	}
	return nil
}
