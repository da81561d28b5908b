package adminlog

import "context"

type Repository interface {
	Append(ctx context.Context, entry Entry) error
	// List returns entries newest first, optionally filtered by event.
	List(ctx context.Context, eventID string) ([]Entry, error)
}
