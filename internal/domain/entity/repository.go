package entity

import "context"

type Repository interface {
	GetRegister(ctx context.Context) (Register, bool, error)
	SaveRegister(ctx context.Context, reg Register) error
}
