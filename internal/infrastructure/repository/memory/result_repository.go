package memory

import (
	"context"
	"sync"

	"github.com/lightsout-league/pickem/internal/domain/result"
)

type EventResultRepository struct {
	mu    sync.RWMutex
	items map[string]result.EventResult
}

func NewEventResultRepository() *EventResultRepository {
	return &EventResultRepository{items: make(map[string]result.EventResult)}
}

func (r *EventResultRepository) Get(_ context.Context, eventID string) (result.EventResult, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.items[eventID]
	if !ok {
		return result.EventResult{}, false, nil
	}
	return res, true, nil
}

func (r *EventResultRepository) ListAll(_ context.Context) (map[string]result.EventResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]result.EventResult, len(r.items))
	for eventID, res := range r.items {
		out[eventID] = res
	}
	return out, nil
}

func (r *EventResultRepository) Upsert(_ context.Context, res result.EventResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[res.EventID] = res
	return nil
}
