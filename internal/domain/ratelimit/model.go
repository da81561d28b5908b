package ratelimit

import "time"

// Counter is one fixed-window attempt counter, keyed by an operation
// name and the caller's network origin.
type Counter struct {
	Operation string
	Origin    string
	Count     int
	ResetAt   time.Time
}

// Decision is the outcome of one attempt. RetryAfter is only meaningful
// when Allowed is false.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Apply runs the fixed-window rule for a single attempt and returns the
// counter state to persist plus the decision. Callers must run it inside
// whatever serializes access to the counter (a DB transaction, a mutex).
//
// A fresh or expired window starts at count 1. A live window increments
// until the limit, then rejects with the time left until reset. Bursts
// of up to twice the limit across a window boundary are accepted
// behavior of the fixed-window scheme.
func Apply(counter Counter, exists bool, now time.Time, limit int, window time.Duration) (Counter, Decision) {
	if !exists || !now.Before(counter.ResetAt) {
		counter.Count = 1
		counter.ResetAt = now.Add(window)
		return counter, Decision{Allowed: true, Remaining: limit - 1}
	}

	if counter.Count >= limit {
		return counter, Decision{RetryAfter: counter.ResetAt.Sub(now)}
	}

	counter.Count++
	return counter, Decision{Allowed: true, Remaining: limit - counter.Count}
}
