package memory

import (
	"context"
	"sync"

	"github.com/lightsout-league/pickem/internal/domain/verification"
)

type VerificationRepository struct {
	mu    sync.Mutex
	items map[string]verification.Code
}

func NewVerificationRepository() *VerificationRepository {
	return &VerificationRepository{items: make(map[string]verification.Code)}
}

func (r *VerificationRepository) Get(_ context.Context, email string) (verification.Code, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code, ok := r.items[email]
	if !ok {
		return verification.Code{}, false, nil
	}
	return code, true, nil
}

func (r *VerificationRepository) Put(_ context.Context, code verification.Code) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[code.Email] = code
	return nil
}

func (r *VerificationRepository) Delete(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, email)
	return nil
}
