package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lightsout-league/pickem/internal/domain/invitation"
	"github.com/lightsout-league/pickem/internal/domain/leaderboard"
	"github.com/lightsout-league/pickem/internal/domain/picks"
	"github.com/lightsout-league/pickem/internal/domain/user"
	"github.com/lightsout-league/pickem/internal/platform/logging"
)

// SignupInput is what a verified caller submits to join the league.
type SignupInput struct {
	DisplayName    string
	FirstName      string
	LastName       string
	InvitationCode string
}

// AccountService owns the user lifecycle: signup, profile edits, and the
// admin-side flags. Signup and purge touch several repositories; each
// write is idempotent or harmless to repeat, so a partial failure can be
// retried safely.
type AccountService struct {
	userRepo        user.Repository
	leaderboardRepo leaderboard.Repository
	picksRepo       picks.Repository
	invitationRepo  invitation.Repository
	logger          *logging.Logger
	now             func() time.Time
}

func NewAccountService(
	userRepo user.Repository,
	leaderboardRepo leaderboard.Repository,
	picksRepo picks.Repository,
	invitationRepo invitation.Repository,
	logger *logging.Logger,
) *AccountService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AccountService{
		userRepo:        userRepo,
		leaderboardRepo: leaderboardRepo,
		picksRepo:       picksRepo,
		invitationRepo:  invitationRepo,
		logger:          logger,
		now:             time.Now,
	}
}

// Signup creates the private profile plus the zeroed public leaderboard
// row and marks the invitation code used. Calling it again for an
// existing profile is a no-op reporting created=false.
func (s *AccountService) Signup(ctx context.Context, principal user.Principal, input SignupInput) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.Signup")
	defer span.End()

	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		displayName = user.FallbackDisplayName(principal.UserID)
	}

	profile := user.Profile{
		ID:             principal.UserID,
		Email:          normalizeEmail(principal.Email),
		DisplayName:    displayName,
		FirstName:      strings.TrimSpace(input.FirstName),
		LastName:       strings.TrimSpace(input.LastName),
		DuesPaidStatus: user.DuesUnpaid,
		CreatedAt:      s.now().UTC(),
	}
	created, err := s.userRepo.Create(ctx, profile)
	if err != nil {
		return false, fmt.Errorf("create profile: %w", err)
	}
	if !created {
		return false, nil
	}

	if err := s.leaderboardRepo.Init(ctx, leaderboard.NewEntry(profile.ID, profile.DisplayName)); err != nil {
		return true, fmt.Errorf("init leaderboard row: %w", err)
	}

	if code := normalizeCode(input.InvitationCode); code != "" {
		if err := s.invitationRepo.MarkUsed(ctx, code, profile.ID, profile.Email); err != nil {
			s.logger.WarnContext(ctx, "mark invitation code used",
				"code", code, "user_id", profile.ID, "error", err)
		}
	}

	s.logger.InfoContext(ctx, "user signed up", "user_id", profile.ID)
	return true, nil
}

// GetProfile returns the caller's private profile.
func (s *AccountService) GetProfile(ctx context.Context, principal user.Principal) (user.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.GetProfile")
	defer span.End()

	profile, found, err := s.userRepo.GetByID(ctx, principal.UserID)
	if err != nil {
		return user.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	if !found {
		return user.Profile{}, fmt.Errorf("%w: no profile for user %s", ErrNotFound, principal.UserID)
	}
	return profile, nil
}

// UpdateDisplayName renames the caller and syncs the public leaderboard
// row, the one field patched outside a recompute.
func (s *AccountService) UpdateDisplayName(ctx context.Context, principal user.Principal, displayName string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.UpdateDisplayName")
	defer span.End()

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return fmt.Errorf("%w: display name is required", ErrInvalidInput)
	}

	profile, found, err := s.userRepo.GetByID(ctx, principal.UserID)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: no profile for user %s", ErrNotFound, principal.UserID)
	}

	profile.DisplayName = displayName
	if err := s.userRepo.Update(ctx, profile); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if err := s.leaderboardRepo.UpdateDisplayName(ctx, profile.ID, displayName); err != nil {
		return fmt.Errorf("sync leaderboard display name: %w", err)
	}
	return nil
}

// SetAdmin toggles the admin flag on a target profile.
func (s *AccountService) SetAdmin(ctx context.Context, principal user.Principal, targetID string, isAdmin bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.SetAdmin")
	defer span.End()

	caller, err := requireAdmin(ctx, s.userRepo, principal)
	if err != nil {
		return err
	}
	target, found, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("load target profile: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: no profile for user %s", ErrNotFound, targetID)
	}

	target.IsAdmin = isAdmin
	if err := s.userRepo.Update(ctx, target); err != nil {
		return fmt.Errorf("update target profile: %w", err)
	}
	s.logger.InfoContext(ctx, "admin flag changed",
		"admin_id", caller.ID, "user_id", targetID, "is_admin", isAdmin)
	return nil
}

// SetDuesStatus records whether a member has paid league dues.
func (s *AccountService) SetDuesStatus(ctx context.Context, principal user.Principal, targetID string, status user.DuesStatus) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.SetDuesStatus")
	defer span.End()

	if _, err := requireAdmin(ctx, s.userRepo, principal); err != nil {
		return err
	}
	if status != user.DuesPaid && status != user.DuesUnpaid {
		return fmt.Errorf("%w: unknown dues status %q", ErrInvalidInput, status)
	}
	target, found, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("load target profile: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: no profile for user %s", ErrNotFound, targetID)
	}

	target.DuesPaidStatus = status
	if err := s.userRepo.Update(ctx, target); err != nil {
		return fmt.Errorf("update target profile: %w", err)
	}
	return nil
}

// Purge removes a member entirely: profile, public row, season picks,
// and releases any invitation codes they consumed. Admins can purge
// anyone; members can purge themselves.
func (s *AccountService) Purge(ctx context.Context, principal user.Principal, targetID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.Purge")
	defer span.End()

	if targetID == "" {
		return fmt.Errorf("%w: target user id is required", ErrInvalidInput)
	}
	if targetID != principal.UserID {
		if _, err := requireAdmin(ctx, s.userRepo, principal); err != nil {
			return err
		}
	}

	if err := s.picksRepo.DeleteByUser(ctx, targetID); err != nil {
		return fmt.Errorf("delete picks for user %s: %w", targetID, err)
	}
	if err := s.leaderboardRepo.Delete(ctx, targetID); err != nil {
		return fmt.Errorf("delete leaderboard row for user %s: %w", targetID, err)
	}
	if err := s.invitationRepo.ReleaseByUser(ctx, targetID); err != nil {
		return fmt.Errorf("release invitation codes for user %s: %w", targetID, err)
	}
	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		return fmt.Errorf("delete profile for user %s: %w", targetID, err)
	}

	s.logger.InfoContext(ctx, "account purged", "user_id", targetID, "by", principal.UserID)
	return nil
}
