package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/lightsout-league/pickem/internal/domain/leaderboard"
)

type LeaderboardRepository struct {
	mu    sync.RWMutex
	items map[string]leaderboard.Entry
}

func NewLeaderboardRepository() *LeaderboardRepository {
	return &LeaderboardRepository{items: make(map[string]leaderboard.Entry)}
}

func (r *LeaderboardRepository) ListPage(_ context.Context, offset, limit int) ([]leaderboard.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]leaderboard.Entry, 0, len(r.items))
	for _, entry := range r.items {
		all = append(all, entry)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Rank != all[j].Rank {
			return all[i].Rank < all[j].Rank
		}
		if all[i].TotalPoints != all[j].TotalPoints {
			return all[i].TotalPoints > all[j].TotalPoints
		}
		return all[i].UserID < all[j].UserID
	})

	if offset >= len(all) {
		return []leaderboard.Entry{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return append([]leaderboard.Entry(nil), all[offset:end]...), nil
}

// ReplaceAll swaps the table in one assignment under the write lock, so
// concurrent readers see either the old table or the new one.
func (r *LeaderboardRepository) ReplaceAll(_ context.Context, entries []leaderboard.Entry) error {
	next := make(map[string]leaderboard.Entry, len(entries))
	for _, entry := range entries {
		next[entry.UserID] = entry
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = next
	return nil
}

func (r *LeaderboardRepository) Init(_ context.Context, entry leaderboard.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[entry.UserID]; exists {
		return nil
	}
	r.items[entry.UserID] = entry
	return nil
}

func (r *LeaderboardRepository) UpdateDisplayName(_ context.Context, userID, displayName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.items[userID]
	if !ok {
		return nil
	}
	entry.DisplayName = displayName
	r.items[userID] = entry
	return nil
}

func (r *LeaderboardRepository) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, userID)
	return nil
}
