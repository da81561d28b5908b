package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/lightsout-league/pickem/internal/domain/adminlog"
	"github.com/lightsout-league/pickem/internal/domain/entity"
	"github.com/lightsout-league/pickem/internal/domain/result"
	"github.com/lightsout-league/pickem/internal/domain/scoring"
	"github.com/lightsout-league/pickem/internal/domain/user"
	"github.com/lightsout-league/pickem/internal/platform/logging"
)

// Recalculator is the league rebuild hook invoked after every result
// write. RecalcService satisfies it.
type Recalculator interface {
	Recalculate(ctx context.Context) (int, error)
}

// ResultsService records event outcomes. Every successful write triggers
// a full league recompute; recompute failures are logged but never fail
// the result save, since the stored result is already authoritative and
// any later recompute will pick it up.
type ResultsService struct {
	resultRepo  result.Repository
	scoringRepo scoring.Repository
	entityRepo  entity.Repository
	userRepo    user.Repository
	auditRepo   adminlog.Repository
	recalc      Recalculator
	logger      *logging.Logger
	now         func() time.Time
}

func NewResultsService(
	resultRepo result.Repository,
	scoringRepo scoring.Repository,
	entityRepo entity.Repository,
	userRepo user.Repository,
	auditRepo adminlog.Repository,
	recalc Recalculator,
	logger *logging.Logger,
) *ResultsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ResultsService{
		resultRepo:  resultRepo,
		scoringRepo: scoringRepo,
		entityRepo:  entityRepo,
		userRepo:    userRepo,
		auditRepo:   auditRepo,
		recalc:      recalc,
		logger:      logger,
		now:         time.Now,
	}
}

// SaveResult upserts one event's outcome. The first save freezes a
// scoring snapshot (active points table + driver-to-constructor mapping)
// inside the result; later edits keep the original snapshot so the event
// is never rescored under rules that changed since.
func (s *ResultsService) SaveResult(ctx context.Context, principal user.Principal, res result.EventResult) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultsService.SaveResult")
	defer span.End()

	caller, err := requireAdmin(ctx, s.userRepo, principal)
	if err != nil {
		return err
	}
	if res.EventID == "" {
		return fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	existing, found, err := s.resultRepo.Get(ctx, res.EventID)
	if err != nil {
		return fmt.Errorf("load result for event %s: %w", res.EventID, err)
	}
	if found && existing.Snapshot != nil {
		res.Snapshot = existing.Snapshot
	} else {
		snapshot, err := s.buildSnapshot(ctx)
		if err != nil {
			return err
		}
		res.Snapshot = &snapshot
	}
	res.UpdatedAt = s.now().UTC()

	if err := s.resultRepo.Upsert(ctx, res); err != nil {
		return fmt.Errorf("save result for event %s: %w", res.EventID, err)
	}

	action := "result_created"
	if found {
		action = "result_updated"
	}
	if s.auditRepo != nil {
		entry := adminlog.Entry{
			AdminID:   caller.ID,
			AdminName: caller.DisplayName,
			EventID:   res.EventID,
			Action:    action,
			CreatedAt: res.UpdatedAt,
		}
		if err := s.auditRepo.Append(ctx, entry); err != nil {
			s.logger.WarnContext(ctx, "append admin log entry", "error", err)
		}
	}

	if count, err := s.recalc.Recalculate(ctx); err != nil {
		s.logger.ErrorContext(ctx, "recompute after result save failed",
			"event_id", res.EventID, "error", err)
	} else {
		s.logger.InfoContext(ctx, "result saved and league recomputed",
			"event_id", res.EventID, "users_processed", count)
	}
	return nil
}

// GetResult returns one event's recorded outcome.
func (s *ResultsService) GetResult(ctx context.Context, eventID string) (result.EventResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultsService.GetResult")
	defer span.End()

	if eventID == "" {
		return result.EventResult{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}
	res, found, err := s.resultRepo.Get(ctx, eventID)
	if err != nil {
		return result.EventResult{}, fmt.Errorf("load result for event %s: %w", eventID, err)
	}
	if !found {
		return result.EventResult{}, fmt.Errorf("%w: no result for event %s", ErrNotFound, eventID)
	}
	return res, nil
}

// ListResults returns every recorded outcome keyed by event id.
func (s *ResultsService) ListResults(ctx context.Context) (map[string]result.EventResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultsService.ListResults")
	defer span.End()

	results, err := s.resultRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return results, nil
}

func (s *ResultsService) buildSnapshot(ctx context.Context) (scoring.Snapshot, error) {
	table := scoring.DefaultPointsTable()
	settings, found, err := s.scoringRepo.GetSettings(ctx)
	if err != nil {
		return scoring.Snapshot{}, fmt.Errorf("load scoring settings: %w", err)
	}
	if found {
		if active, ok := settings.ActiveTable(); ok {
			table = active
		}
	}

	teams := map[string]string{}
	register, found, err := s.entityRepo.GetRegister(ctx)
	if err != nil {
		return scoring.Snapshot{}, fmt.Errorf("load entity register: %w", err)
	}
	if found {
		teams = register.TeamByDriver()
	}

	return scoring.Snapshot{Table: table, DriverTeams: teams}, nil
}
