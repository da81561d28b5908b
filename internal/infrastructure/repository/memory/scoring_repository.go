package memory

import (
	"context"
	"sync"

	"github.com/lightsout-league/pickem/internal/domain/entity"
	"github.com/lightsout-league/pickem/internal/domain/scoring"
)

type ScoringRepository struct {
	mu       sync.RWMutex
	settings scoring.Settings
	found    bool
}

func NewScoringRepository() *ScoringRepository {
	return &ScoringRepository{}
}

func (r *ScoringRepository) GetSettings(_ context.Context) (scoring.Settings, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.settings, r.found, nil
}

func (r *ScoringRepository) SaveSettings(_ context.Context, settings scoring.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.settings = settings
	r.found = true
	return nil
}

type EntityRepository struct {
	mu       sync.RWMutex
	register entity.Register
	found    bool
}

func NewEntityRepository() *EntityRepository {
	return &EntityRepository{}
}

func (r *EntityRepository) GetRegister(_ context.Context) (entity.Register, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.register, r.found, nil
}

func (r *EntityRepository) SaveRegister(_ context.Context, reg entity.Register) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.register = reg
	r.found = true
	return nil
}
