package memory

import (
	"context"
	"sync"

	"github.com/lightsout-league/pickem/internal/domain/picks"
)

type PicksRepository struct {
	mu    sync.RWMutex
	items map[string]map[string]picks.Selection
}

func NewPicksRepository() *PicksRepository {
	return &PicksRepository{items: make(map[string]map[string]picks.Selection)}
}

func (r *PicksRepository) GetByUser(_ context.Context, userID string) (map[string]picks.Selection, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.items[userID]
	if !ok {
		return nil, false, nil
	}
	return cloneRecord(record), true, nil
}

func (r *PicksRepository) ListAll(_ context.Context) (map[string]map[string]picks.Selection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]map[string]picks.Selection, len(r.items))
	for userID, record := range r.items {
		out[userID] = cloneRecord(record)
	}
	return out, nil
}

func (r *PicksRepository) UpsertEvent(_ context.Context, userID, eventID string, sel picks.Selection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.items[userID]
	if !ok {
		record = make(map[string]picks.Selection)
		r.items[userID] = record
	}
	// Selections merge per event; an assigned penalty outlives slate
	// rewrites.
	existing := record[eventID]
	sel.Penalty = existing.Penalty
	sel.PenaltyReason = existing.PenaltyReason
	record[eventID] = sel
	return nil
}

func (r *PicksRepository) UpdatePenalty(_ context.Context, userID, eventID string, penalty float64, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.items[userID]
	if !ok {
		record = make(map[string]picks.Selection)
		r.items[userID] = record
	}
	sel := record[eventID]
	sel.Penalty = penalty
	sel.PenaltyReason = reason
	record[eventID] = sel
	return nil
}

func (r *PicksRepository) DeleteByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, userID)
	return nil
}

func cloneRecord(record map[string]picks.Selection) map[string]picks.Selection {
	out := make(map[string]picks.Selection, len(record))
	for eventID, sel := range record {
		out[eventID] = sel
	}
	return out
}
