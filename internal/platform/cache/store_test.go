package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

var errUnexpectedValue = errors.New("unexpected loaded value")

func TestGetOrLoadCollapsesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "page-1", nil
	}

	const readers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(readers)
	errCh := make(chan error, readers)

	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "leaderboard:page:0:50", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "page-1" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestGetOrLoadReturnsCachedValue(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "leaderboard:page:0:50", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "leaderboard:page:0:50", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestDeletePrefixDropsMatchingKeysOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)
	store.Set(ctx, "leaderboard:page:0:50", "a")
	store.Set(ctx, "leaderboard:page:50:50", "b")
	store.Set(ctx, "settings:scoring", "c")

	store.DeletePrefix(ctx, "leaderboard:page:")

	if _, ok := store.Get(ctx, "leaderboard:page:0:50"); ok {
		t.Fatal("expected first page to be evicted")
	}
	if _, ok := store.Get(ctx, "leaderboard:page:50:50"); ok {
		t.Fatal("expected second page to be evicted")
	}
	if _, ok := store.Get(ctx, "settings:scoring"); !ok {
		t.Fatal("expected unrelated key to survive")
	}
}

func TestExpiredEntryIsNotServed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(10 * time.Millisecond)
	store.Set(ctx, "leaderboard:page:0:50", "stale")

	time.Sleep(25 * time.Millisecond)

	if _, ok := store.Get(ctx, "leaderboard:page:0:50"); ok {
		t.Fatal("expected expired entry to miss")
	}
}
