package usecase

import (
	"context"
	"fmt"

	"github.com/lightsout-league/pickem/internal/domain/leaderboard"
	"github.com/lightsout-league/pickem/internal/platform/cache"
	"github.com/lightsout-league/pickem/internal/platform/logging"
)

const (
	defaultLeaderboardPageSize = 50
	maxLeaderboardPageSize     = 100
)

// LeaderboardService serves the public standings. Pages are cached in
// front of the repository; the recompute invalidates the whole prefix on
// every commit so readers only ever see complete tables.
type LeaderboardService struct {
	repo      leaderboard.Repository
	pageCache *cache.Store
	logger    *logging.Logger
}

func NewLeaderboardService(repo leaderboard.Repository, pageCache *cache.Store, logger *logging.Logger) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeaderboardService{
		repo:      repo,
		pageCache: pageCache,
		logger:    logger,
	}
}

// ListPage returns one page of standings ordered by total points
// descending. Limit defaults to 50 and is capped at 100; a negative
// offset reads from the top.
func (s *LeaderboardService) ListPage(ctx context.Context, offset, limit int) ([]leaderboard.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.ListPage")
	defer span.End()

	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultLeaderboardPageSize
	}
	if limit > maxLeaderboardPageSize {
		limit = maxLeaderboardPageSize
	}

	if s.pageCache == nil {
		return s.repo.ListPage(ctx, offset, limit)
	}

	key := fmt.Sprintf("%s%d:%d", leaderboardCachePrefix, offset, limit)
	value, err := s.pageCache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.repo.ListPage(ctx, offset, limit)
	})
	if err != nil {
		return nil, fmt.Errorf("list leaderboard page: %w", err)
	}
	entries, ok := value.([]leaderboard.Entry)
	if !ok {
		return s.repo.ListPage(ctx, offset, limit)
	}
	return entries, nil
}
