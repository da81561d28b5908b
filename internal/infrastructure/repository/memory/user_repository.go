package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/lightsout-league/pickem/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	items map[string]user.Profile
}

func NewUserRepository() *UserRepository {
	return &UserRepository{items: make(map[string]user.Profile)}
}

func (r *UserRepository) GetByID(_ context.Context, id string) (user.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.items[id]
	if !ok {
		return user.Profile{}, false, nil
	}
	return profile, true, nil
}

func (r *UserRepository) ListAll(_ context.Context) ([]user.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.Profile, 0, len(r.items))
	for _, profile := range r.items {
		out = append(out, profile)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *UserRepository) Create(_ context.Context, profile user.Profile) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[profile.ID]; exists {
		return false, nil
	}
	r.items[profile.ID] = profile
	return true, nil
}

func (r *UserRepository) Update(_ context.Context, profile user.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[profile.ID] = profile
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}
