package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/lightsout-league/pickem/internal/domain/adminlog"
	"github.com/lightsout-league/pickem/internal/domain/entity"
	"github.com/lightsout-league/pickem/internal/domain/leaderboard"
	"github.com/lightsout-league/pickem/internal/domain/picks"
	"github.com/lightsout-league/pickem/internal/domain/result"
	"github.com/lightsout-league/pickem/internal/domain/scoring"
	"github.com/lightsout-league/pickem/internal/domain/user"
	"github.com/lightsout-league/pickem/internal/platform/cache"
	"github.com/lightsout-league/pickem/internal/platform/logging"
)

const defaultScoringWorkers = 4

// leaderboardCachePrefix keys cached leaderboard pages; every committed
// recompute invalidates the whole prefix.
const leaderboardCachePrefix = "leaderboard:"

// RecomputeOutcome is what the manual trigger reports back to the admin.
type RecomputeOutcome struct {
	UsersProcessed int
}

// RecalcService rebuilds the entire league from stored state. A run is a
// pure function of what it reads: no locks are taken across runs, and
// overlapping runs are tolerated because each one replaces the
// leaderboard in a single atomic batch.
type RecalcService struct {
	picksRepo       picks.Repository
	resultRepo      result.Repository
	scoringRepo     scoring.Repository
	entityRepo      entity.Repository
	userRepo        user.Repository
	leaderboardRepo leaderboard.Repository
	limiter         *RateLimiter
	auditRepo       adminlog.Repository
	pageCache       *cache.Store
	logger          *logging.Logger
	now             func() time.Time
	workers         int
}

func NewRecalcService(
	picksRepo picks.Repository,
	resultRepo result.Repository,
	scoringRepo scoring.Repository,
	entityRepo entity.Repository,
	userRepo user.Repository,
	leaderboardRepo leaderboard.Repository,
	limiter *RateLimiter,
	auditRepo adminlog.Repository,
	pageCache *cache.Store,
	logger *logging.Logger,
) *RecalcService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RecalcService{
		picksRepo:       picksRepo,
		resultRepo:      resultRepo,
		scoringRepo:     scoringRepo,
		entityRepo:      entityRepo,
		userRepo:        userRepo,
		leaderboardRepo: leaderboardRepo,
		limiter:         limiter,
		auditRepo:       auditRepo,
		pageCache:       pageCache,
		logger:          logger,
		now:             time.Now,
		workers:         defaultScoringWorkers,
	}
}

// SetWorkers overrides the scoring fan-out width. Values below one are
// ignored.
func (s *RecalcService) SetWorkers(n int) {
	if n >= 1 {
		s.workers = n
	}
}

// Recalculate is the clean-sweep rebuild: every user scored against
// every recorded result, summed, ranked, and committed as one batch.
// When no results exist at all it aborts before writing so a populated
// leaderboard is never zeroed out.
func (s *RecalcService) Recalculate(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecalcService.Recalculate")
	defer span.End()

	inputs, err := s.loadInputs(ctx)
	if err != nil {
		return 0, err
	}
	if len(inputs.results) == 0 {
		s.logger.Warn("recompute aborted: no event results recorded")
		return 0, nil
	}

	entries, err := s.scoreLeague(inputs)
	if err != nil {
		return 0, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].UserID < entries[j].UserID
	})
	runAt := s.now().UTC()
	for idx := range entries {
		entries[idx].Rank = idx + 1
		entries[idx].UpdatedAt = runAt
	}
	entries = append(entries, s.unrankedRows(inputs, runAt)...)

	if err := s.leaderboardRepo.ReplaceAll(ctx, entries); err != nil {
		return 0, fmt.Errorf("%w: replace leaderboard: %v", ErrDependencyUnavailable, err)
	}
	if s.pageCache != nil {
		s.pageCache.DeletePrefix(ctx, leaderboardCachePrefix)
	}

	s.logger.Info("league recompute complete", "users_processed", len(entries))
	return len(entries), nil
}

// ManualRecompute is the admin-invoked trigger. The caller must resolve
// to a stored profile with the admin flag; a permission failure has zero
// side effects and does not consume the rate-limit window.
func (s *RecalcService) ManualRecompute(ctx context.Context, principal user.Principal, origin string) (RecomputeOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecalcService.ManualRecompute")
	defer span.End()

	profile, err := requireAdmin(ctx, s.userRepo, principal)
	if err != nil {
		return RecomputeOutcome{}, err
	}

	if err := s.limiter.Check(ctx, OpManualRecompute, origin); err != nil {
		return RecomputeOutcome{}, err
	}

	count, err := s.Recalculate(ctx)
	if err != nil {
		return RecomputeOutcome{}, err
	}

	if s.auditRepo != nil {
		entry := adminlog.Entry{
			AdminID:   profile.ID,
			AdminName: profile.DisplayName,
			Action:    "manual_recompute",
			Changes:   fmt.Sprintf("recomputed %d users", count),
			CreatedAt: s.now().UTC(),
		}
		if err := s.auditRepo.Append(ctx, entry); err != nil {
			s.logger.Warn("append admin log entry", "error", err)
		}
	}

	return RecomputeOutcome{UsersProcessed: count}, nil
}

// unrankedRows carries every profile that has no picks into the batch
// as a zeroed row. ReplaceAll drops anything not in the batch, so a
// fresh signup's row must be re-emitted here or the next recompute
// would erase it.
func (s *RecalcService) unrankedRows(inputs recalcInputs, runAt time.Time) []leaderboard.Entry {
	ids := make([]string, 0, len(inputs.nameByUser))
	for userID := range inputs.nameByUser {
		if _, picked := inputs.allPicks[userID]; picked {
			continue
		}
		ids = append(ids, userID)
	}
	sort.Strings(ids)

	rows := make([]leaderboard.Entry, 0, len(ids))
	for _, userID := range ids {
		displayName := inputs.nameByUser[userID]
		if displayName == "" {
			displayName = user.FallbackDisplayName(userID)
		}
		entry := leaderboard.NewEntry(userID, displayName)
		entry.UpdatedAt = runAt
		rows = append(rows, entry)
	}
	return rows
}

type recalcInputs struct {
	allPicks     map[string]map[string]picks.Selection
	results      map[string]result.EventResult
	activeTable  scoring.PointsTable
	currentTeams map[string]string
	nameByUser   map[string]string
}

// loadInputs fetches the five recompute inputs concurrently and joins
// before the scoring pass begins.
func (s *RecalcService) loadInputs(ctx context.Context) (recalcInputs, error) {
	var inputs recalcInputs

	loaders := pool.New().WithErrors().WithContext(ctx)
	loaders.Go(func(ctx context.Context) error {
		allPicks, err := s.picksRepo.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("list all picks: %w", err)
		}
		inputs.allPicks = allPicks
		return nil
	})
	loaders.Go(func(ctx context.Context) error {
		results, err := s.resultRepo.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("list all results: %w", err)
		}
		inputs.results = results
		return nil
	})
	loaders.Go(func(ctx context.Context) error {
		settings, found, err := s.scoringRepo.GetSettings(ctx)
		if err != nil {
			return fmt.Errorf("load scoring settings: %w", err)
		}
		inputs.activeTable = scoring.DefaultPointsTable()
		if found {
			if table, ok := settings.ActiveTable(); ok {
				inputs.activeTable = table
			}
		}
		return nil
	})
	loaders.Go(func(ctx context.Context) error {
		register, found, err := s.entityRepo.GetRegister(ctx)
		if err != nil {
			return fmt.Errorf("load entity register: %w", err)
		}
		inputs.currentTeams = map[string]string{}
		if found {
			inputs.currentTeams = register.TeamByDriver()
		}
		return nil
	})
	loaders.Go(func(ctx context.Context) error {
		profiles, err := s.userRepo.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("list user profiles: %w", err)
		}
		inputs.nameByUser = make(map[string]string, len(profiles))
		for _, profile := range profiles {
			inputs.nameByUser[profile.ID] = profile.DisplayName
		}
		return nil
	})

	if err := loaders.Wait(); err != nil {
		return recalcInputs{}, err
	}
	return inputs, nil
}

// scoreLeague fans the per-user scoring out on a worker pool. Each user
// is independent; the pool just bounds concurrency.
func (s *RecalcService) scoreLeague(inputs recalcInputs) ([]leaderboard.Entry, error) {
	workerCount := s.workers
	if workerCount < 1 {
		workerCount = defaultScoringWorkers
	}
	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create scoring pool: %w", err)
	}
	defer workerPool.Release()

	entries := make([]leaderboard.Entry, 0, len(inputs.allPicks))
	var mu sync.Mutex
	var workers sync.WaitGroup

	for userID, userPicks := range inputs.allPicks {
		userID, userPicks := userID, userPicks
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			breakdown := scoreUser(userPicks, inputs.results, inputs.activeTable, inputs.currentTeams)

			displayName, ok := inputs.nameByUser[userID]
			if !ok || displayName == "" {
				displayName = user.FallbackDisplayName(userID)
			}

			mu.Lock()
			entries = append(entries, leaderboard.Entry{
				UserID:      userID,
				DisplayName: displayName,
				TotalPoints: breakdown.Total,
				Breakdown:   breakdown,
			})
			mu.Unlock()
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit scoring task: %w", err)
		}
	}

	workers.Wait()
	return entries, nil
}

// scoreUser sums one user's per-event breakdowns. Only events present in
// both the user's picks and the result map contribute; each event uses
// its own frozen snapshot when it has one.
func scoreUser(
	userPicks map[string]picks.Selection,
	results map[string]result.EventResult,
	activeTable scoring.PointsTable,
	currentTeams map[string]string,
) scoring.Breakdown {
	var sum scoring.Breakdown
	for eventID, sel := range userPicks {
		res, ok := results[eventID]
		if !ok {
			continue
		}
		eventScore := scoring.CalculateEventScore(sel, res.Outcome(), res.Table(activeTable), currentTeams)
		sum.Accumulate(eventScore)
	}
	return sum
}
