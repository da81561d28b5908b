package result

import "context"

type Repository interface {
	Get(ctx context.Context, eventID string) (EventResult, bool, error)
	ListAll(ctx context.Context) (map[string]EventResult, error)
	Upsert(ctx context.Context, res EventResult) error
}
