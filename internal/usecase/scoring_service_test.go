package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/lightsout-league/pickem/internal/domain/entity"
	"github.com/lightsout-league/pickem/internal/domain/scoring"
	"github.com/lightsout-league/pickem/internal/domain/user"
	"github.com/lightsout-league/pickem/internal/platform/logging"
)

func TestGetSettingsFallsBackToStockTable(t *testing.T) {
	t.Parallel()

	svc := NewScoringService(&stubScoringRepo{}, &stubEntityRepo{}, adminUserRepo(), logging.NewNop())

	settings, err := svc.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.ActiveProfileID != "default" {
		t.Fatalf("expected default profile, got %q", settings.ActiveProfileID)
	}
	table, ok := settings.ActiveTable()
	if !ok {
		t.Fatal("expected active table to resolve")
	}
	if len(table.GrandPrixFinish) == 0 || table.GrandPrixFinish[0] != 25 {
		t.Fatalf("expected stock grand prix table, got %v", table.GrandPrixFinish)
	}
}

func TestSaveSettingsValidatesProfiles(t *testing.T) {
	t.Parallel()

	svc := NewScoringService(&stubScoringRepo{}, &stubEntityRepo{}, adminUserRepo(), logging.NewNop())
	admin := user.Principal{UserID: "admin-1"}

	tests := []struct {
		name     string
		settings scoring.Settings
	}{
		{
			name:     "no profiles",
			settings: scoring.Settings{ActiveProfileID: "default"},
		},
		{
			name: "missing profile id",
			settings: scoring.Settings{
				ActiveProfileID: "default",
				Profiles:        []scoring.Profile{{Name: "Broken"}},
			},
		},
		{
			name: "duplicate profile id",
			settings: scoring.Settings{
				ActiveProfileID: "default",
				Profiles: []scoring.Profile{
					{ID: "default", Table: scoring.DefaultPointsTable()},
					{ID: "default", Table: scoring.DefaultPointsTable()},
				},
			},
		},
		{
			name: "active id does not resolve",
			settings: scoring.Settings{
				ActiveProfileID: "sprint-heavy",
				Profiles:        []scoring.Profile{{ID: "default", Table: scoring.DefaultPointsTable()}},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.SaveSettings(context.Background(), admin, tc.settings)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestSaveSettingsRequiresAdmin(t *testing.T) {
	t.Parallel()

	userRepo := &stubUserRepo{
		getByIDFn: func(_ context.Context, id string) (user.Profile, bool, error) {
			return user.Profile{ID: id, IsAdmin: false}, true, nil
		},
	}
	svc := NewScoringService(&stubScoringRepo{}, &stubEntityRepo{}, userRepo, logging.NewNop())

	err := svc.SaveSettings(context.Background(), user.Principal{UserID: "u1"}, scoring.Settings{
		ActiveProfileID: "default",
		Profiles:        []scoring.Profile{{ID: "default", Table: scoring.DefaultPointsTable()}},
	})
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestSaveRegisterPersistsDocument(t *testing.T) {
	t.Parallel()

	var saved entity.Register
	entityRepo := &stubEntityRepo{
		saveRegisterFn: func(_ context.Context, reg entity.Register) error {
			saved = reg
			return nil
		},
	}
	svc := NewScoringService(&stubScoringRepo{}, entityRepo, adminUserRepo(), logging.NewNop())

	register := entity.Register{
		Drivers:      []entity.Driver{{ID: "ver", Name: "Max Verstappen", ConstructorID: "redbull"}},
		Constructors: []entity.Constructor{{ID: "redbull", Name: "Red Bull"}},
	}
	if err := svc.SaveRegister(context.Background(), user.Principal{UserID: "admin-1"}, register); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(saved.Drivers) != 1 || saved.Drivers[0].ID != "ver" {
		t.Fatalf("unexpected saved register: %+v", saved)
	}
}

func TestSaveRegisterRejectsBlankIDs(t *testing.T) {
	t.Parallel()

	svc := NewScoringService(&stubScoringRepo{}, &stubEntityRepo{}, adminUserRepo(), logging.NewNop())

	err := svc.SaveRegister(context.Background(), user.Principal{UserID: "admin-1"}, entity.Register{
		Drivers: []entity.Driver{{Name: "No ID"}},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
