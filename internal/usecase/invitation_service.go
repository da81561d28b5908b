package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lightsout-league/pickem/internal/domain/invitation"
	"github.com/lightsout-league/pickem/internal/domain/user"
	"github.com/lightsout-league/pickem/internal/platform/logging"
)

const maxBulkInvitations = 50

// generateAttempts bounds collision retries during code issuance.
const generateAttempts = 5

// InvitationService manages league invitation codes: public validation
// during signup and the admin issuance surface.
type InvitationService struct {
	repo     invitation.Repository
	userRepo user.Repository
	limiter  *RateLimiter
	logger   *logging.Logger
	now      func() time.Time
}

func NewInvitationService(repo invitation.Repository, userRepo user.Repository, limiter *RateLimiter, logger *logging.Logger) *InvitationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &InvitationService{
		repo:     repo,
		userRepo: userRepo,
		limiter:  limiter,
		logger:   logger,
		now:      time.Now,
	}
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate reserves an active code for a signup in flight. The window is
// consumed before the lookup so guessing attempts burn attempts whether
// or not the code exists.
func (s *InvitationService) Validate(ctx context.Context, code, origin string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.InvitationService.Validate")
	defer span.End()

	if err := s.limiter.Check(ctx, OpValidateInvitation, origin); err != nil {
		return err
	}

	code = normalizeCode(code)
	if code == "" {
		return fmt.Errorf("%w: invitation code is required", ErrInvalidInput)
	}

	found, err := s.repo.Reserve(ctx, code)
	if err != nil {
		if errors.Is(err, invitation.ErrNotActive) {
			return fmt.Errorf("%w: invitation code already claimed", ErrInvalidInput)
		}
		return fmt.Errorf("reserve invitation code: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: invitation code does not exist", ErrNotFound)
	}
	return nil
}

// Create issues one code, retrying on the unlikely collision.
func (s *InvitationService) Create(ctx context.Context, principal user.Principal, reservedFor string) (invitation.Code, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InvitationService.Create")
	defer span.End()

	caller, err := requireAdmin(ctx, s.userRepo, principal)
	if err != nil {
		return invitation.Code{}, err
	}
	return s.issue(ctx, caller, reservedFor)
}

// CreateBulk issues up to maxBulkInvitations codes in one call.
func (s *InvitationService) CreateBulk(ctx context.Context, principal user.Principal, count int) ([]invitation.Code, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InvitationService.CreateBulk")
	defer span.End()

	caller, err := requireAdmin(ctx, s.userRepo, principal)
	if err != nil {
		return nil, err
	}
	if count < 1 || count > maxBulkInvitations {
		return nil, fmt.Errorf("%w: count must be between 1 and %d", ErrInvalidInput, maxBulkInvitations)
	}

	codes := make([]invitation.Code, 0, count)
	for i := 0; i < count; i++ {
		code, err := s.issue(ctx, caller, "")
		if err != nil {
			return codes, err
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// List returns every code, admin only.
func (s *InvitationService) List(ctx context.Context, principal user.Principal) ([]invitation.Code, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InvitationService.List")
	defer span.End()

	if _, err := requireAdmin(ctx, s.userRepo, principal); err != nil {
		return nil, err
	}
	codes, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invitation codes: %w", err)
	}
	return codes, nil
}

// SetReservationNote annotates who a code is meant for.
func (s *InvitationService) SetReservationNote(ctx context.Context, principal user.Principal, code, reservedFor string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.InvitationService.SetReservationNote")
	defer span.End()

	if _, err := requireAdmin(ctx, s.userRepo, principal); err != nil {
		return err
	}
	code = normalizeCode(code)
	if code == "" {
		return fmt.Errorf("%w: invitation code is required", ErrInvalidInput)
	}
	if err := s.repo.SetReservationNote(ctx, code, reservedFor); err != nil {
		return fmt.Errorf("set reservation note on %s: %w", code, err)
	}
	return nil
}

// Delete removes a code outright.
func (s *InvitationService) Delete(ctx context.Context, principal user.Principal, code string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.InvitationService.Delete")
	defer span.End()

	if _, err := requireAdmin(ctx, s.userRepo, principal); err != nil {
		return err
	}
	code = normalizeCode(code)
	if code == "" {
		return fmt.Errorf("%w: invitation code is required", ErrInvalidInput)
	}
	if err := s.repo.Delete(ctx, code); err != nil {
		return fmt.Errorf("delete invitation code %s: %w", code, err)
	}
	return nil
}

func (s *InvitationService) issue(ctx context.Context, caller user.Profile, reservedFor string) (invitation.Code, error) {
	for attempt := 0; attempt < generateAttempts; attempt++ {
		value, err := invitation.Generate()
		if err != nil {
			return invitation.Code{}, fmt.Errorf("generate invitation code: %w", err)
		}
		if _, exists, err := s.repo.Get(ctx, value); err != nil {
			return invitation.Code{}, fmt.Errorf("check invitation code: %w", err)
		} else if exists {
			continue
		}

		code := invitation.Code{
			Code:        value,
			Status:      invitation.StatusActive,
			CreatedAt:   s.now().UTC(),
			CreatedBy:   caller.ID,
			ReservedFor: reservedFor,
		}
		if err := s.repo.Create(ctx, code); err != nil {
			return invitation.Code{}, fmt.Errorf("create invitation code: %w", err)
		}
		return code, nil
	}
	return invitation.Code{}, fmt.Errorf("invitation code generation kept colliding after %d attempts", generateAttempts)
}
