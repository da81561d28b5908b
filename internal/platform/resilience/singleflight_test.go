package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlightCollapsesConcurrentCallers(t *testing.T) {
	var g SingleFlight
	var loads int32

	const callers = 24
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(callers)

	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err, _ := g.Do("leaderboard:page:0:50", func() (any, error) {
				atomic.AddInt32(&loads, 1)
				time.Sleep(20 * time.Millisecond)
				return "page", nil
			})
			if err != nil {
				t.Errorf("shared call failed: %v", err)
			}
			if v != "page" {
				t.Errorf("shared call value = %v, want page", v)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&loads); got != 1 {
		t.Fatalf("loader ran %d times, want 1", got)
	}
}

func TestSingleFlightPropagatesError(t *testing.T) {
	var g SingleFlight
	wantErr := errors.New("backend down")

	_, err, _ := g.Do("leaderboard:page:0:50", func() (any, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}

	// A failed call must not be cached for the next flight.
	v, err, _ := g.Do("leaderboard:page:0:50", func() (any, error) {
		return "recovered", nil
	})
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if v != "recovered" {
		t.Fatalf("second call value = %v, want recovered", v)
	}
}
