package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/lightsout-league/pickem/internal/domain/leaderboard"
	"github.com/lightsout-league/pickem/internal/platform/cache"
	"github.com/lightsout-league/pickem/internal/platform/logging"
)

func TestListPageClampsPagination(t *testing.T) {
	t.Parallel()

	var gotOffset, gotLimit int
	repo := &stubLeaderboardRepo{
		listPageFn: func(_ context.Context, offset, limit int) ([]leaderboard.Entry, error) {
			gotOffset, gotLimit = offset, limit
			return nil, nil
		},
	}
	svc := NewLeaderboardService(repo, nil, logging.NewNop())

	cases := []struct {
		offset, limit         int
		wantOffset, wantLimit int
	}{
		{0, 0, 0, 50},
		{-5, -1, 0, 50},
		{10, 25, 10, 25},
		{0, 500, 0, 100},
	}
	for _, tc := range cases {
		if _, err := svc.ListPage(context.Background(), tc.offset, tc.limit); err != nil {
			t.Fatalf("ListPage(%d, %d): %v", tc.offset, tc.limit, err)
		}
		if gotOffset != tc.wantOffset || gotLimit != tc.wantLimit {
			t.Fatalf("ListPage(%d, %d) hit repo with (%d, %d), want (%d, %d)",
				tc.offset, tc.limit, gotOffset, gotLimit, tc.wantOffset, tc.wantLimit)
		}
	}
}

func TestListPageCachesPages(t *testing.T) {
	t.Parallel()

	loads := 0
	repo := &stubLeaderboardRepo{
		listPageFn: func(context.Context, int, int) ([]leaderboard.Entry, error) {
			loads++
			return []leaderboard.Entry{{UserID: "user-1", Rank: 1}}, nil
		},
	}
	svc := NewLeaderboardService(repo, cache.NewStore(time.Minute), logging.NewNop())

	for i := 0; i < 3; i++ {
		entries, err := svc.ListPage(context.Background(), 0, 50)
		if err != nil {
			t.Fatalf("ListPage: %v", err)
		}
		if len(entries) != 1 || entries[0].UserID != "user-1" {
			t.Fatalf("entries = %+v", entries)
		}
	}
	if loads != 1 {
		t.Fatalf("repository loaded %d times, want 1", loads)
	}
}
