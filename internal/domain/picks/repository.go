package picks

import "context"

// Repository stores one record per user containing every event selection,
// merge-updated per event key.
type Repository interface {
	GetByUser(ctx context.Context, userID string) (map[string]Selection, bool, error)
	ListAll(ctx context.Context) (map[string]map[string]Selection, error)
	UpsertEvent(ctx context.Context, userID, eventID string, sel Selection) error
	UpdatePenalty(ctx context.Context, userID, eventID string, penalty float64, reason string) error
	DeleteByUser(ctx context.Context, userID string) error
}
