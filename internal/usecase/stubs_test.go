package usecase

import (
	"context"
	"time"

	"github.com/lightsout-league/pickem/internal/domain/adminlog"
	"github.com/lightsout-league/pickem/internal/domain/entity"
	"github.com/lightsout-league/pickem/internal/domain/invitation"
	"github.com/lightsout-league/pickem/internal/domain/leaderboard"
	"github.com/lightsout-league/pickem/internal/domain/picks"
	"github.com/lightsout-league/pickem/internal/domain/ratelimit"
	"github.com/lightsout-league/pickem/internal/domain/result"
	"github.com/lightsout-league/pickem/internal/domain/scoring"
	"github.com/lightsout-league/pickem/internal/domain/user"
	"github.com/lightsout-league/pickem/internal/domain/verification"
)

type stubPicksRepo struct {
	getByUserFn     func(ctx context.Context, userID string) (map[string]picks.Selection, bool, error)
	listAllFn       func(ctx context.Context) (map[string]map[string]picks.Selection, error)
	upsertEventFn   func(ctx context.Context, userID, eventID string, sel picks.Selection) error
	updatePenaltyFn func(ctx context.Context, userID, eventID string, penalty float64, reason string) error
	deleteByUserFn  func(ctx context.Context, userID string) error
}

func (s *stubPicksRepo) GetByUser(ctx context.Context, userID string) (map[string]picks.Selection, bool, error) {
	if s.getByUserFn == nil {
		return nil, false, nil
	}
	return s.getByUserFn(ctx, userID)
}

func (s *stubPicksRepo) ListAll(ctx context.Context) (map[string]map[string]picks.Selection, error) {
	if s.listAllFn == nil {
		return map[string]map[string]picks.Selection{}, nil
	}
	return s.listAllFn(ctx)
}

func (s *stubPicksRepo) UpsertEvent(ctx context.Context, userID, eventID string, sel picks.Selection) error {
	if s.upsertEventFn == nil {
		return nil
	}
	return s.upsertEventFn(ctx, userID, eventID, sel)
}

func (s *stubPicksRepo) UpdatePenalty(ctx context.Context, userID, eventID string, penalty float64, reason string) error {
	if s.updatePenaltyFn == nil {
		return nil
	}
	return s.updatePenaltyFn(ctx, userID, eventID, penalty, reason)
}

func (s *stubPicksRepo) DeleteByUser(ctx context.Context, userID string) error {
	if s.deleteByUserFn == nil {
		return nil
	}
	return s.deleteByUserFn(ctx, userID)
}

type stubResultRepo struct {
	getFn     func(ctx context.Context, eventID string) (result.EventResult, bool, error)
	listAllFn func(ctx context.Context) (map[string]result.EventResult, error)
	upsertFn  func(ctx context.Context, res result.EventResult) error
}

func (s *stubResultRepo) Get(ctx context.Context, eventID string) (result.EventResult, bool, error) {
	if s.getFn == nil {
		return result.EventResult{}, false, nil
	}
	return s.getFn(ctx, eventID)
}

func (s *stubResultRepo) ListAll(ctx context.Context) (map[string]result.EventResult, error) {
	if s.listAllFn == nil {
		return map[string]result.EventResult{}, nil
	}
	return s.listAllFn(ctx)
}

func (s *stubResultRepo) Upsert(ctx context.Context, res result.EventResult) error {
	if s.upsertFn == nil {
		return nil
	}
	return s.upsertFn(ctx, res)
}

type stubScoringRepo struct {
	getSettingsFn  func(ctx context.Context) (scoring.Settings, bool, error)
	saveSettingsFn func(ctx context.Context, settings scoring.Settings) error
}

func (s *stubScoringRepo) GetSettings(ctx context.Context) (scoring.Settings, bool, error) {
	if s.getSettingsFn == nil {
		return scoring.Settings{}, false, nil
	}
	return s.getSettingsFn(ctx)
}

func (s *stubScoringRepo) SaveSettings(ctx context.Context, settings scoring.Settings) error {
	if s.saveSettingsFn == nil {
		return nil
	}
	return s.saveSettingsFn(ctx, settings)
}

type stubEntityRepo struct {
	getRegisterFn  func(ctx context.Context) (entity.Register, bool, error)
	saveRegisterFn func(ctx context.Context, reg entity.Register) error
}

func (s *stubEntityRepo) GetRegister(ctx context.Context) (entity.Register, bool, error) {
	if s.getRegisterFn == nil {
		return entity.Register{}, false, nil
	}
	return s.getRegisterFn(ctx)
}

func (s *stubEntityRepo) SaveRegister(ctx context.Context, reg entity.Register) error {
	if s.saveRegisterFn == nil {
		return nil
	}
	return s.saveRegisterFn(ctx, reg)
}

type stubUserRepo struct {
	getByIDFn func(ctx context.Context, id string) (user.Profile, bool, error)
	listAllFn func(ctx context.Context) ([]user.Profile, error)
	createFn  func(ctx context.Context, profile user.Profile) (bool, error)
	updateFn  func(ctx context.Context, profile user.Profile) error
	deleteFn  func(ctx context.Context, id string) error
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (user.Profile, bool, error) {
	if s.getByIDFn == nil {
		return user.Profile{}, false, nil
	}
	return s.getByIDFn(ctx, id)
}

func (s *stubUserRepo) ListAll(ctx context.Context) ([]user.Profile, error) {
	if s.listAllFn == nil {
		return nil, nil
	}
	return s.listAllFn(ctx)
}

func (s *stubUserRepo) Create(ctx context.Context, profile user.Profile) (bool, error) {
	if s.createFn == nil {
		return true, nil
	}
	return s.createFn(ctx, profile)
}

func (s *stubUserRepo) Update(ctx context.Context, profile user.Profile) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, profile)
}

func (s *stubUserRepo) Delete(ctx context.Context, id string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, id)
}

type stubLeaderboardRepo struct {
	listPageFn          func(ctx context.Context, offset, limit int) ([]leaderboard.Entry, error)
	replaceAllFn        func(ctx context.Context, entries []leaderboard.Entry) error
	initFn              func(ctx context.Context, entry leaderboard.Entry) error
	updateDisplayNameFn func(ctx context.Context, userID, displayName string) error
	deleteFn            func(ctx context.Context, userID string) error
}

func (s *stubLeaderboardRepo) ListPage(ctx context.Context, offset, limit int) ([]leaderboard.Entry, error) {
	if s.listPageFn == nil {
		return nil, nil
	}
	return s.listPageFn(ctx, offset, limit)
}

func (s *stubLeaderboardRepo) ReplaceAll(ctx context.Context, entries []leaderboard.Entry) error {
	if s.replaceAllFn == nil {
		return nil
	}
	return s.replaceAllFn(ctx, entries)
}

func (s *stubLeaderboardRepo) Init(ctx context.Context, entry leaderboard.Entry) error {
	if s.initFn == nil {
		return nil
	}
	return s.initFn(ctx, entry)
}

func (s *stubLeaderboardRepo) UpdateDisplayName(ctx context.Context, userID, displayName string) error {
	if s.updateDisplayNameFn == nil {
		return nil
	}
	return s.updateDisplayNameFn(ctx, userID, displayName)
}

func (s *stubLeaderboardRepo) Delete(ctx context.Context, userID string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, userID)
}

type stubRateLimitRepo struct {
	takeFn func(ctx context.Context, operation, origin string, limit int, window time.Duration, now time.Time) (ratelimit.Decision, error)
}

func (s *stubRateLimitRepo) Take(ctx context.Context, operation, origin string, limit int, window time.Duration, now time.Time) (ratelimit.Decision, error) {
	if s.takeFn == nil {
		return ratelimit.Decision{Allowed: true}, nil
	}
	return s.takeFn(ctx, operation, origin, limit, window, now)
}

type stubInvitationRepo struct {
	getFn                func(ctx context.Context, code string) (invitation.Code, bool, error)
	listFn               func(ctx context.Context) ([]invitation.Code, error)
	createFn             func(ctx context.Context, code invitation.Code) error
	reserveFn            func(ctx context.Context, code string) (bool, error)
	markUsedFn           func(ctx context.Context, code, userID, email string) error
	releaseByUserFn      func(ctx context.Context, userID string) error
	setReservationNoteFn func(ctx context.Context, code, reservedFor string) error
	deleteFn             func(ctx context.Context, code string) error
}

func (s *stubInvitationRepo) Get(ctx context.Context, code string) (invitation.Code, bool, error) {
	if s.getFn == nil {
		return invitation.Code{}, false, nil
	}
	return s.getFn(ctx, code)
}

func (s *stubInvitationRepo) List(ctx context.Context) ([]invitation.Code, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

func (s *stubInvitationRepo) Create(ctx context.Context, code invitation.Code) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, code)
}

func (s *stubInvitationRepo) Reserve(ctx context.Context, code string) (bool, error) {
	if s.reserveFn == nil {
		return true, nil
	}
	return s.reserveFn(ctx, code)
}

func (s *stubInvitationRepo) MarkUsed(ctx context.Context, code, userID, email string) error {
	if s.markUsedFn == nil {
		return nil
	}
	return s.markUsedFn(ctx, code, userID, email)
}

func (s *stubInvitationRepo) ReleaseByUser(ctx context.Context, userID string) error {
	if s.releaseByUserFn == nil {
		return nil
	}
	return s.releaseByUserFn(ctx, userID)
}

func (s *stubInvitationRepo) SetReservationNote(ctx context.Context, code, reservedFor string) error {
	if s.setReservationNoteFn == nil {
		return nil
	}
	return s.setReservationNoteFn(ctx, code, reservedFor)
}

func (s *stubInvitationRepo) Delete(ctx context.Context, code string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, code)
}

type stubVerificationRepo struct {
	getFn    func(ctx context.Context, email string) (verification.Code, bool, error)
	putFn    func(ctx context.Context, code verification.Code) error
	deleteFn func(ctx context.Context, email string) error
}

func (s *stubVerificationRepo) Get(ctx context.Context, email string) (verification.Code, bool, error) {
	if s.getFn == nil {
		return verification.Code{}, false, nil
	}
	return s.getFn(ctx, email)
}

func (s *stubVerificationRepo) Put(ctx context.Context, code verification.Code) error {
	if s.putFn == nil {
		return nil
	}
	return s.putFn(ctx, code)
}

func (s *stubVerificationRepo) Delete(ctx context.Context, email string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, email)
}

type stubAdminLogRepo struct {
	appendFn func(ctx context.Context, entry adminlog.Entry) error
	listFn   func(ctx context.Context, eventID string) ([]adminlog.Entry, error)
}

func (s *stubAdminLogRepo) Append(ctx context.Context, entry adminlog.Entry) error {
	if s.appendFn == nil {
		return nil
	}
	return s.appendFn(ctx, entry)
}

func (s *stubAdminLogRepo) List(ctx context.Context, eventID string) ([]adminlog.Entry, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, eventID)
}

func strPtr(v string) *string { return &v }
