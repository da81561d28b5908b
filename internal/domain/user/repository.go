package user

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Profile, bool, error)
	ListAll(ctx context.Context) ([]Profile, error)
	// Create inserts the profile and reports whether it was created;
	// false means a profile with that id already existed (signup is
	// idempotent).
	Create(ctx context.Context, profile Profile) (bool, error)
	Update(ctx context.Context, profile Profile) error
	Delete(ctx context.Context, id string) error
}
