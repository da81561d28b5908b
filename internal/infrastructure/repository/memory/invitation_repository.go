package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lightsout-league/pickem/internal/domain/invitation"
)

type InvitationRepository struct {
	mu    sync.Mutex
	items map[string]invitation.Code
	now   func() time.Time
}

func NewInvitationRepository() *InvitationRepository {
	return &InvitationRepository{
		items: make(map[string]invitation.Code),
		now:   time.Now,
	}
}

func (r *InvitationRepository) Get(_ context.Context, code string) (invitation.Code, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[code]
	if !ok {
		return invitation.Code{}, false, nil
	}
	return item, true, nil
}

func (r *InvitationRepository) List(_ context.Context) ([]invitation.Code, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]invitation.Code, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Code < out[j].Code
	})
	return out, nil
}

func (r *InvitationRepository) Create(_ context.Context, code invitation.Code) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[code.Code] = code
	return nil
}

func (r *InvitationRepository) Reserve(_ context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[code]
	if !ok {
		return false, nil
	}
	if item.Status != invitation.StatusActive {
		return true, invitation.ErrNotActive
	}

	reservedAt := r.now().UTC()
	item.Status = invitation.StatusReserved
	item.ReservedAt = &reservedAt
	r.items[code] = item
	return true, nil
}

func (r *InvitationRepository) MarkUsed(_ context.Context, code, userID, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[code]
	if !ok {
		return nil
	}
	usedAt := r.now().UTC()
	item.Status = invitation.StatusUsed
	item.UsedAt = &usedAt
	item.UsedBy = userID
	item.UsedByEmail = email
	r.items[code] = item
	return nil
}

func (r *InvitationRepository) ReleaseByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for code, item := range r.items {
		if item.UsedBy != userID {
			continue
		}
		item.Status = invitation.StatusActive
		item.ReservedAt = nil
		item.UsedAt = nil
		item.UsedBy = ""
		item.UsedByEmail = ""
		r.items[code] = item
	}
	return nil
}

func (r *InvitationRepository) SetReservationNote(_ context.Context, code, reservedFor string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[code]
	if !ok {
		return nil
	}
	item.ReservedFor = reservedFor
	r.items[code] = item
	return nil
}

func (r *InvitationRepository) Delete(_ context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, code)
	return nil
}
