package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/lightsout-league/pickem/internal/domain/entity"
)

type EntityRepository struct {
	db *sqlx.DB
}

func NewEntityRepository(db *sqlx.DB) *EntityRepository {
	return &EntityRepository{db: db}
}

func (r *EntityRepository) GetRegister(ctx context.Context) (entity.Register, bool, error) {
	var register entity.Register
	found, err := getDocument(ctx, r.db, "entity_register", &register)
	if err != nil {
		return entity.Register{}, false, err
	}
	return register, found, nil
}

func (r *EntityRepository) SaveRegister(ctx context.Context, reg entity.Register) error {
	return saveDocument(ctx, r.db, "entity_register", reg)
}
