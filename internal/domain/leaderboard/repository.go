package leaderboard

import "context"

type Repository interface {
	// ListPage returns entries ordered by total points descending.
	ListPage(ctx context.Context, offset, limit int) ([]Entry, error)
	// ReplaceAll commits the whole table as one atomic batch. On error
	// the previous table must remain fully intact; readers never observe
	// a partially replaced leaderboard.
	ReplaceAll(ctx context.Context, entries []Entry) error
	Init(ctx context.Context, entry Entry) error
	UpdateDisplayName(ctx context.Context, userID, displayName string) error
	Delete(ctx context.Context, userID string) error
}
