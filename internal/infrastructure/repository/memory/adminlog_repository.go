package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/lightsout-league/pickem/internal/domain/adminlog"
)

type AdminLogRepository struct {
	mu      sync.Mutex
	entries []adminlog.Entry
	nextID  int64
}

func NewAdminLogRepository() *AdminLogRepository {
	return &AdminLogRepository{}
}

func (r *AdminLogRepository) Append(_ context.Context, entry adminlog.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		r.nextID++
		entry.ID = strconv.FormatInt(r.nextID, 10)
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *AdminLogRepository) List(_ context.Context, eventID string) ([]adminlog.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]adminlog.Entry, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		entry := r.entries[i]
		if eventID != "" && entry.EventID != eventID {
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}
