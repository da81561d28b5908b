package usecase

import (
	"context"
	"fmt"

	"github.com/lightsout-league/pickem/internal/domain/picks"
	"github.com/lightsout-league/pickem/internal/domain/user"
	"github.com/lightsout-league/pickem/internal/platform/logging"
)

// PicksService manages per-user event selections. Writes merge into the
// user's season record per event key; saving picks for one event never
// touches another.
type PicksService struct {
	picksRepo picks.Repository
	userRepo  user.Repository
	logger    *logging.Logger
}

func NewPicksService(picksRepo picks.Repository, userRepo user.Repository, logger *logging.Logger) *PicksService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PicksService{
		picksRepo: picksRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// SaveEventPicks stores the caller's selection for one event. Submission
// requires a complete slate: every slot filled plus a fastest-lap pick.
// Penalty fields are admin-only and silently stripped here.
func (s *PicksService) SaveEventPicks(ctx context.Context, principal user.Principal, eventID string, sel picks.Selection) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PicksService.SaveEventPicks")
	defer span.End()

	if eventID == "" {
		return fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}
	sel.Penalty = 0
	sel.PenaltyReason = ""
	if err := sel.ValidateComplete(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.picksRepo.UpsertEvent(ctx, principal.UserID, eventID, sel); err != nil {
		return fmt.Errorf("save picks for event %s: %w", eventID, err)
	}
	s.logger.InfoContext(ctx, "picks saved", "user_id", principal.UserID, "event_id", eventID)
	return nil
}

// GetMyPicks returns the caller's full season record. Users who have
// never picked get an empty map, not an error.
func (s *PicksService) GetMyPicks(ctx context.Context, principal user.Principal) (map[string]picks.Selection, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PicksService.GetMyPicks")
	defer span.End()

	record, found, err := s.picksRepo.GetByUser(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("load picks for user %s: %w", principal.UserID, err)
	}
	if !found {
		return map[string]picks.Selection{}, nil
	}
	return record, nil
}

// SetPenalty assigns an admin penalty to a user's event selection. The
// fraction is deducted from that event's total at recompute time.
func (s *PicksService) SetPenalty(ctx context.Context, principal user.Principal, userID, eventID string, penalty float64, reason string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PicksService.SetPenalty")
	defer span.End()

	caller, err := requireAdmin(ctx, s.userRepo, principal)
	if err != nil {
		return err
	}
	if userID == "" || eventID == "" {
		return fmt.Errorf("%w: user id and event id are required", ErrInvalidInput)
	}
	if penalty < 0 || penalty > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidInput, picks.ErrInvalidPenalty)
	}

	if err := s.picksRepo.UpdatePenalty(ctx, userID, eventID, penalty, reason); err != nil {
		return fmt.Errorf("set penalty for user %s event %s: %w", userID, eventID, err)
	}
	s.logger.InfoContext(ctx, "penalty assigned",
		"admin_id", caller.ID, "user_id", userID, "event_id", eventID, "penalty", penalty)
	return nil
}
