package usecase

import (
	"context"
	"fmt"

	"github.com/lightsout-league/pickem/internal/domain/entity"
	"github.com/lightsout-league/pickem/internal/domain/scoring"
	"github.com/lightsout-league/pickem/internal/domain/user"
	"github.com/lightsout-league/pickem/internal/platform/logging"
)

// ScoringService manages the scoring configuration and the league entity
// register. Edits here only affect events recorded after the change;
// existing results keep their frozen snapshots.
type ScoringService struct {
	scoringRepo scoring.Repository
	entityRepo  entity.Repository
	userRepo    user.Repository
	logger      *logging.Logger
}

func NewScoringService(scoringRepo scoring.Repository, entityRepo entity.Repository, userRepo user.Repository, logger *logging.Logger) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoringService{
		scoringRepo: scoringRepo,
		entityRepo:  entityRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// GetSettings returns the stored configuration, or a single-profile
// document built from the stock table when none exists yet.
func (s *ScoringService) GetSettings(ctx context.Context) (scoring.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.GetSettings")
	defer span.End()

	settings, found, err := s.scoringRepo.GetSettings(ctx)
	if err != nil {
		return scoring.Settings{}, fmt.Errorf("load scoring settings: %w", err)
	}
	if !found {
		return scoring.Settings{
			ActiveProfileID: "default",
			Profiles: []scoring.Profile{
				{ID: "default", Name: "Standard", Table: scoring.DefaultPointsTable()},
			},
		}, nil
	}
	return settings, nil
}

// SaveSettings replaces the configuration document. The active profile
// id must resolve to one of the submitted profiles.
func (s *ScoringService) SaveSettings(ctx context.Context, principal user.Principal, settings scoring.Settings) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.SaveSettings")
	defer span.End()

	caller, err := requireAdmin(ctx, s.userRepo, principal)
	if err != nil {
		return err
	}
	if len(settings.Profiles) == 0 {
		return fmt.Errorf("%w: at least one scoring profile is required", ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(settings.Profiles))
	for _, profile := range settings.Profiles {
		if profile.ID == "" {
			return fmt.Errorf("%w: scoring profile id is required", ErrInvalidInput)
		}
		if _, dup := seen[profile.ID]; dup {
			return fmt.Errorf("%w: duplicate scoring profile id %q", ErrInvalidInput, profile.ID)
		}
		seen[profile.ID] = struct{}{}
	}
	if _, ok := settings.ActiveTable(); !ok {
		return fmt.Errorf("%w: active profile id %q does not resolve", ErrInvalidInput, settings.ActiveProfileID)
	}

	if err := s.scoringRepo.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("save scoring settings: %w", err)
	}
	s.logger.InfoContext(ctx, "scoring settings saved",
		"admin_id", caller.ID, "active_profile", settings.ActiveProfileID, "profiles", len(settings.Profiles))
	return nil
}

// GetRegister returns the league's drivers and constructors. An empty
// register is valid before the season is configured.
func (s *ScoringService) GetRegister(ctx context.Context) (entity.Register, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.GetRegister")
	defer span.End()

	register, _, err := s.entityRepo.GetRegister(ctx)
	if err != nil {
		return entity.Register{}, fmt.Errorf("load entity register: %w", err)
	}
	return register, nil
}

// SaveRegister replaces the entity register wholesale.
func (s *ScoringService) SaveRegister(ctx context.Context, principal user.Principal, register entity.Register) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.SaveRegister")
	defer span.End()

	caller, err := requireAdmin(ctx, s.userRepo, principal)
	if err != nil {
		return err
	}
	for _, driver := range register.Drivers {
		if driver.ID == "" {
			return fmt.Errorf("%w: driver id is required", ErrInvalidInput)
		}
	}
	for _, constructor := range register.Constructors {
		if constructor.ID == "" {
			return fmt.Errorf("%w: constructor id is required", ErrInvalidInput)
		}
	}

	if err := s.entityRepo.SaveRegister(ctx, register); err != nil {
		return fmt.Errorf("save entity register: %w", err)
	}
	s.logger.InfoContext(ctx, "entity register saved",
		"admin_id", caller.ID, "drivers", len(register.Drivers), "constructors", len(register.Constructors))
	return nil
}
