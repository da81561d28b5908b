package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/lightsout-league/pickem/internal/domain/result"
	"github.com/lightsout-league/pickem/internal/domain/scoring"
	"github.com/lightsout-league/pickem/internal/domain/user"
	"github.com/lightsout-league/pickem/internal/platform/logging"
)

type stubRecalculator struct {
	calls int
	err   error
}

func (s *stubRecalculator) Recalculate(context.Context) (int, error) {
	s.calls++
	return 0, s.err
}

func adminUserRepo() *stubUserRepo {
	return &stubUserRepo{
		getByIDFn: func(_ context.Context, id string) (user.Profile, bool, error) {
			return user.Profile{ID: id, DisplayName: "Race Control", IsAdmin: true}, true, nil
		},
	}
}

func TestSaveResultEmbedsSnapshotOnFirstSave(t *testing.T) {
	t.Parallel()

	custom := scoring.PointsTable{GrandPrixFinish: []int{50}}
	scoringRepo := &stubScoringRepo{
		getSettingsFn: func(context.Context) (scoring.Settings, bool, error) {
			return scoring.Settings{
				ActiveProfileID: "double",
				Profiles:        []scoring.Profile{{ID: "double", Name: "Double", Table: custom}},
			}, true, nil
		},
	}

	var saved result.EventResult
	resultRepo := &stubResultRepo{
		upsertFn: func(_ context.Context, res result.EventResult) error {
			saved = res
			return nil
		},
	}

	recalc := &stubRecalculator{}
	svc := NewResultsService(resultRepo, scoringRepo, &stubEntityRepo{}, adminUserRepo(), &stubAdminLogRepo{}, recalc, logging.NewNop())

	err := svc.SaveResult(context.Background(), user.Principal{UserID: "admin-1"}, result.EventResult{
		EventID:         "bahrain",
		GrandPrixFinish: []*string{strPtr("ver")},
	})
	if err != nil {
		t.Fatalf("SaveResult: %v", err)
	}
	if saved.Snapshot == nil {
		t.Fatalf("first save did not embed a snapshot")
	}
	if got := saved.Snapshot.Table.GrandPrixFinish[0]; got != 50 {
		t.Fatalf("snapshot table p1 = %d, want active profile value 50", got)
	}
	if recalc.calls != 1 {
		t.Fatalf("recompute triggered %d times, want 1", recalc.calls)
	}
}

func TestSaveResultPreservesExistingSnapshot(t *testing.T) {
	t.Parallel()

	frozen := &scoring.Snapshot{Table: scoring.PointsTable{GrandPrixFinish: []int{100}}}
	resultRepo := &stubResultRepo{
		getFn: func(_ context.Context, eventID string) (result.EventResult, bool, error) {
			return result.EventResult{EventID: eventID, Snapshot: frozen}, true, nil
		},
	}
	var saved result.EventResult
	resultRepo.upsertFn = func(_ context.Context, res result.EventResult) error {
		saved = res
		return nil
	}

	svc := NewResultsService(resultRepo, &stubScoringRepo{}, &stubEntityRepo{}, adminUserRepo(), &stubAdminLogRepo{}, &stubRecalculator{}, logging.NewNop())

	err := svc.SaveResult(context.Background(), user.Principal{UserID: "admin-1"}, result.EventResult{
		EventID:         "bahrain",
		GrandPrixFinish: []*string{strPtr("ham")},
	})
	if err != nil {
		t.Fatalf("SaveResult: %v", err)
	}
	if saved.Snapshot != frozen {
		t.Fatalf("edit replaced the frozen snapshot")
	}
}

func TestSaveResultSurvivesRecomputeFailure(t *testing.T) {
	t.Parallel()

	upserts := 0
	resultRepo := &stubResultRepo{
		upsertFn: func(context.Context, result.EventResult) error {
			upserts++
			return nil
		},
	}
	recalc := &stubRecalculator{err: errors.New("replica down")}

	svc := NewResultsService(resultRepo, &stubScoringRepo{}, &stubEntityRepo{}, adminUserRepo(), &stubAdminLogRepo{}, recalc, logging.NewNop())

	err := svc.SaveResult(context.Background(), user.Principal{UserID: "admin-1"}, result.EventResult{EventID: "bahrain"})
	if err != nil {
		t.Fatalf("SaveResult returned recompute failure: %v", err)
	}
	if upserts != 1 {
		t.Fatalf("result upserted %d times, want 1", upserts)
	}
}

func TestSaveResultRequiresAdmin(t *testing.T) {
	t.Parallel()

	userRepo := &stubUserRepo{
		getByIDFn: func(_ context.Context, id string) (user.Profile, bool, error) {
			return user.Profile{ID: id}, true, nil
		},
	}
	recalc := &stubRecalculator{}
	svc := NewResultsService(&stubResultRepo{}, &stubScoringRepo{}, &stubEntityRepo{}, userRepo, &stubAdminLogRepo{}, recalc, logging.NewNop())

	err := svc.SaveResult(context.Background(), user.Principal{UserID: "user-1"}, result.EventResult{EventID: "bahrain"})
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
	if recalc.calls != 0 {
		t.Fatalf("recompute triggered for a denied save")
	}
}

func TestGetResultNotFound(t *testing.T) {
	t.Parallel()

	svc := NewResultsService(&stubResultRepo{}, &stubScoringRepo{}, &stubEntityRepo{}, adminUserRepo(), &stubAdminLogRepo{}, &stubRecalculator{}, logging.NewNop())
	_, err := svc.GetResult(context.Background(), "monza")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
