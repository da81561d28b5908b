package verification

import "context"

type Repository interface {
	Get(ctx context.Context, email string) (Code, bool, error)
	Put(ctx context.Context, code Code) error
	Delete(ctx context.Context, email string) error
}
