package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/lightsout-league/pickem/internal/domain/leaderboard"
	"github.com/lightsout-league/pickem/internal/domain/user"
	"github.com/lightsout-league/pickem/internal/platform/logging"
)

func newTestAccountService(userRepo *stubUserRepo, lbRepo *stubLeaderboardRepo, picksRepo *stubPicksRepo, invRepo *stubInvitationRepo) *AccountService {
	if userRepo == nil {
		userRepo = &stubUserRepo{}
	}
	if lbRepo == nil {
		lbRepo = &stubLeaderboardRepo{}
	}
	if picksRepo == nil {
		picksRepo = &stubPicksRepo{}
	}
	if invRepo == nil {
		invRepo = &stubInvitationRepo{}
	}
	return NewAccountService(userRepo, lbRepo, picksRepo, invRepo, logging.NewNop())
}

func TestSignupCreatesProfileRowAndConsumesInvitation(t *testing.T) {
	t.Parallel()

	var createdProfile user.Profile
	userRepo := &stubUserRepo{
		createFn: func(_ context.Context, profile user.Profile) (bool, error) {
			createdProfile = profile
			return true, nil
		},
	}
	var initEntry leaderboard.Entry
	lbRepo := &stubLeaderboardRepo{
		initFn: func(_ context.Context, entry leaderboard.Entry) error {
			initEntry = entry
			return nil
		},
	}
	var usedCode, usedBy string
	invRepo := &stubInvitationRepo{
		markUsedFn: func(_ context.Context, code, userID, _ string) error {
			usedCode, usedBy = code, userID
			return nil
		},
	}

	svc := newTestAccountService(userRepo, lbRepo, nil, invRepo)
	created, err := svc.Signup(context.Background(), user.Principal{UserID: "user-1", Email: "Driver@Example.com"}, SignupInput{
		DisplayName:    "Apex Hunters",
		InvitationCode: "lol-ab12-cd34",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if !created {
		t.Fatalf("created = false on first signup")
	}
	if createdProfile.Email != "driver@example.com" {
		t.Fatalf("profile email = %q, want normalized", createdProfile.Email)
	}
	if createdProfile.DuesPaidStatus != user.DuesUnpaid {
		t.Fatalf("dues status = %q, want unpaid default", createdProfile.DuesPaidStatus)
	}
	if initEntry.UserID != "user-1" || initEntry.Rank != leaderboard.UnrankedPosition {
		t.Fatalf("leaderboard row = %+v, want zeroed row at rank %d", initEntry, leaderboard.UnrankedPosition)
	}
	if usedCode != "LOL-AB12-CD34" || usedBy != "user-1" {
		t.Fatalf("invitation consumed as (%q, %q)", usedCode, usedBy)
	}
}

func TestSignupIsIdempotent(t *testing.T) {
	t.Parallel()

	userRepo := &stubUserRepo{
		createFn: func(context.Context, user.Profile) (bool, error) {
			return false, nil
		},
	}
	initCalls := 0
	lbRepo := &stubLeaderboardRepo{
		initFn: func(context.Context, leaderboard.Entry) error {
			initCalls++
			return nil
		},
	}

	svc := newTestAccountService(userRepo, lbRepo, nil, nil)
	created, err := svc.Signup(context.Background(), user.Principal{UserID: "user-1"}, SignupInput{})
	if err != nil {
		t.Fatalf("repeat signup: %v", err)
	}
	if created {
		t.Fatalf("created = true for an existing profile")
	}
	if initCalls != 0 {
		t.Fatalf("leaderboard row initialized %d times on a repeat signup", initCalls)
	}
}

func TestUpdateDisplayNameSyncsLeaderboard(t *testing.T) {
	t.Parallel()

	userRepo := &stubUserRepo{
		getByIDFn: func(_ context.Context, id string) (user.Profile, bool, error) {
			return user.Profile{ID: id, DisplayName: "Old Name"}, true, nil
		},
	}
	var syncedID, syncedName string
	lbRepo := &stubLeaderboardRepo{
		updateDisplayNameFn: func(_ context.Context, userID, displayName string) error {
			syncedID, syncedName = userID, displayName
			return nil
		},
	}

	svc := newTestAccountService(userRepo, lbRepo, nil, nil)
	if err := svc.UpdateDisplayName(context.Background(), user.Principal{UserID: "user-1"}, "  New Name  "); err != nil {
		t.Fatalf("UpdateDisplayName: %v", err)
	}
	if syncedID != "user-1" || syncedName != "New Name" {
		t.Fatalf("leaderboard sync = (%q, %q)", syncedID, syncedName)
	}
}

func TestPurgeRemovesEverythingAndReleasesCodes(t *testing.T) {
	t.Parallel()

	deletedPicks, deletedRow, releasedFor, deletedProfile := "", "", "", ""
	picksRepo := &stubPicksRepo{
		deleteByUserFn: func(_ context.Context, userID string) error {
			deletedPicks = userID
			return nil
		},
	}
	lbRepo := &stubLeaderboardRepo{
		deleteFn: func(_ context.Context, userID string) error {
			deletedRow = userID
			return nil
		},
	}
	invRepo := &stubInvitationRepo{
		releaseByUserFn: func(_ context.Context, userID string) error {
			releasedFor = userID
			return nil
		},
	}
	userRepo := adminUserRepo()
	userRepo.deleteFn = func(_ context.Context, id string) error {
		deletedProfile = id
		return nil
	}

	svc := newTestAccountService(userRepo, lbRepo, picksRepo, invRepo)
	if err := svc.Purge(context.Background(), user.Principal{UserID: "admin-1"}, "user-9"); err != nil {
		t.Fatalf("Purge: %v", err)
	}
	for name, got := range map[string]string{
		"picks":       deletedPicks,
		"leaderboard": deletedRow,
		"invitations": releasedFor,
		"profile":     deletedProfile,
	} {
		if got != "user-9" {
			t.Fatalf("%s cleanup hit %q, want user-9", name, got)
		}
	}
}

func TestPurgeSelfNeedsNoAdmin(t *testing.T) {
	t.Parallel()

	userRepo := &stubUserRepo{
		getByIDFn: func(_ context.Context, id string) (user.Profile, bool, error) {
			return user.Profile{ID: id}, true, nil
		},
	}
	svc := newTestAccountService(userRepo, nil, nil, nil)
	if err := svc.Purge(context.Background(), user.Principal{UserID: "user-1"}, "user-1"); err != nil {
		t.Fatalf("self purge: %v", err)
	}
	if err := svc.Purge(context.Background(), user.Principal{UserID: "user-1"}, "user-2"); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("cross purge err = %v, want ErrPermissionDenied", err)
	}
}

func TestSetDuesStatusValidatesValue(t *testing.T) {
	t.Parallel()

	svc := newTestAccountService(adminUserRepo(), nil, nil, nil)
	err := svc.SetDuesStatus(context.Background(), user.Principal{UserID: "admin-1"}, "user-1", "Maybe")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}
