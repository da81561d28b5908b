package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/lightsout-league/pickem/internal/domain/scoring"
)

type ScoringRepository struct {
	db *sqlx.DB
}

func NewScoringRepository(db *sqlx.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

func (r *ScoringRepository) GetSettings(ctx context.Context) (scoring.Settings, bool, error) {
	var settings scoring.Settings
	found, err := getDocument(ctx, r.db, "scoring_settings", &settings)
	if err != nil {
		return scoring.Settings{}, false, err
	}
	return settings, found, nil
}

func (r *ScoringRepository) SaveSettings(ctx context.Context, settings scoring.Settings) error {
	return saveDocument(ctx, r.db, "scoring_settings", settings)
}
