package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lightsout-league/pickem/internal/domain/invitation"
	"github.com/lightsout-league/pickem/internal/domain/ratelimit"
	"github.com/lightsout-league/pickem/internal/domain/user"
	"github.com/lightsout-league/pickem/internal/platform/logging"
)

func newTestInvitationService(repo *stubInvitationRepo, userRepo *stubUserRepo, limitRepo *stubRateLimitRepo) *InvitationService {
	if repo == nil {
		repo = &stubInvitationRepo{}
	}
	if userRepo == nil {
		userRepo = adminUserRepo()
	}
	if limitRepo == nil {
		limitRepo = &stubRateLimitRepo{}
	}
	return NewInvitationService(repo, userRepo, NewRateLimiter(limitRepo), logging.NewNop())
}

func TestValidateReservesActiveCode(t *testing.T) {
	t.Parallel()

	var reserved string
	repo := &stubInvitationRepo{
		reserveFn: func(_ context.Context, code string) (bool, error) {
			reserved = code
			return true, nil
		},
	}

	svc := newTestInvitationService(repo, nil, nil)
	if err := svc.Validate(context.Background(), " lol-ab12-cd34 ", "10.0.0.1"); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if reserved != "LOL-AB12-CD34" {
		t.Fatalf("reserved %q, want uppercased trimmed code", reserved)
	}
}

func TestValidateMapsRepositoryOutcomes(t *testing.T) {
	t.Parallel()

	repo := &stubInvitationRepo{
		reserveFn: func(context.Context, string) (bool, error) {
			return false, nil
		},
	}
	svc := newTestInvitationService(repo, nil, nil)
	if err := svc.Validate(context.Background(), "LOL-XXXX-XXXX", "10.0.0.1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing code err = %v, want ErrNotFound", err)
	}

	repo = &stubInvitationRepo{
		reserveFn: func(context.Context, string) (bool, error) {
			return true, invitation.ErrNotActive
		},
	}
	svc = newTestInvitationService(repo, nil, nil)
	if err := svc.Validate(context.Background(), "LOL-XXXX-XXXX", "10.0.0.1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("claimed code err = %v, want ErrInvalidInput", err)
	}
}

func TestValidateConsumesWindowBeforeLookup(t *testing.T) {
	t.Parallel()

	lookups := 0
	repo := &stubInvitationRepo{
		reserveFn: func(context.Context, string) (bool, error) {
			lookups++
			return true, nil
		},
	}
	limitRepo := &stubRateLimitRepo{
		takeFn: func(context.Context, string, string, int, time.Duration, time.Time) (ratelimit.Decision, error) {
			return ratelimit.Decision{Allowed: false, RetryAfter: time.Minute}, nil
		},
	}

	svc := newTestInvitationService(repo, nil, limitRepo)
	if err := svc.Validate(context.Background(), "LOL-XXXX-XXXX", "10.0.0.1"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("err = %v, want ErrRateLimited", err)
	}
	if lookups != 0 {
		t.Fatalf("rejected caller still reached the repository %d times", lookups)
	}
}

func TestCreateIssuesWellFormedCode(t *testing.T) {
	t.Parallel()

	var created invitation.Code
	repo := &stubInvitationRepo{
		createFn: func(_ context.Context, code invitation.Code) error {
			created = code
			return nil
		},
	}

	svc := newTestInvitationService(repo, nil, nil)
	code, err := svc.Create(context.Background(), user.Principal{UserID: "admin-1"}, "new member")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !strings.HasPrefix(code.Code, "LOL-") || len(code.Code) != 13 {
		t.Fatalf("code = %q, want LOL-XXXX-XXXX shape", code.Code)
	}
	if created.Status != invitation.StatusActive {
		t.Fatalf("status = %q, want active", created.Status)
	}
	if created.ReservedFor != "new member" {
		t.Fatalf("reservation note = %q", created.ReservedFor)
	}
}

func TestCreateBulkBounds(t *testing.T) {
	t.Parallel()

	svc := newTestInvitationService(nil, nil, nil)
	if _, err := svc.CreateBulk(context.Background(), user.Principal{UserID: "admin-1"}, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("count 0 err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.CreateBulk(context.Background(), user.Principal{UserID: "admin-1"}, maxBulkInvitations+1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("oversized count err = %v, want ErrInvalidInput", err)
	}

	codes, err := svc.CreateBulk(context.Background(), user.Principal{UserID: "admin-1"}, 5)
	if err != nil {
		t.Fatalf("CreateBulk: %v", err)
	}
	if len(codes) != 5 {
		t.Fatalf("issued %d codes, want 5", len(codes))
	}
}

func TestInvitationAdminSurfaceRequiresAdmin(t *testing.T) {
	t.Parallel()

	nonAdmin := &stubUserRepo{
		getByIDFn: func(_ context.Context, id string) (user.Profile, bool, error) {
			return user.Profile{ID: id}, true, nil
		},
	}
	svc := newTestInvitationService(nil, nonAdmin, nil)
	principal := user.Principal{UserID: "user-1"}

	if _, err := svc.Create(context.Background(), principal, ""); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("Create err = %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.List(context.Background(), principal); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("List err = %v, want ErrPermissionDenied", err)
	}
	if err := svc.Delete(context.Background(), principal, "LOL-XXXX-XXXX"); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("Delete err = %v, want ErrPermissionDenied", err)
	}
}
