package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"statsync-server/internal/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances on sleep so quota timing is testable without waiting.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fetchRecorder struct {
	mu    sync.Mutex
	times []time.Time
}

func (r *fetchRecorder) record(at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.times = append(r.times, at)
}

func makeIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("flow-%d", i)
	}
	return ids
}

func TestFetchAllHonorsBurstThenSteadyQuota(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	start := clock.Now()
	recorder := &fetchRecorder{}

	cfg := Config{now: clock.Now, sleep: clock.Sleep}
	ids := makeIDs(50)
	results, errs := FetchAll(context.Background(), ids, cfg, observability.NewLogger(),
		func(ctx context.Context, id string) (string, error) {
			recorder.record(clock.Now())
			return id, nil
		})

	assert.Empty(t, errs)
	assert.Len(t, results, 50)
	require.Len(t, recorder.times, 50)

	sort.Slice(recorder.times, func(i, j int) bool { return recorder.times[i].Before(recorder.times[j]) })

	windowEnd := start.Add(10 * time.Second)
	inWindow := 0
	var steady []time.Time
	for _, at := range recorder.times {
		if at.Before(windowEnd) {
			inWindow++
		} else {
			steady = append(steady, at)
		}
	}
	assert.LessOrEqual(t, inWindow, 30, "burst window must not exceed its request allowance")

	for i := 1; i < len(steady); i++ {
		assert.GreaterOrEqual(t, steady[i].Sub(steady[i-1]), time.Second,
			"steady-phase requests must be at least a second apart")
	}
}

func TestFetchAllPreservesOrderWhenSequential(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	cfg := Config{BurstConcurrency: 1, now: clock.Now, sleep: clock.Sleep}

	ids := makeIDs(8)
	results, errs := FetchAll(context.Background(), ids, cfg, observability.NewLogger(),
		func(ctx context.Context, id string) (string, error) {
			return id, nil
		})

	assert.Empty(t, errs)
	assert.Equal(t, ids, results)
}

func TestFetchAllExcludesFailedIDsWithoutAborting(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	cfg := Config{now: clock.Now, sleep: clock.Sleep}
	boom := errors.New("upstream said no")

	results, errs := FetchAll(context.Background(), []string{"f1", "f2", "f3"}, cfg, observability.NewLogger(),
		func(ctx context.Context, id string) (string, error) {
			if id == "f2" {
				return "", boom
			}
			return id, nil
		})

	assert.ElementsMatch(t, []string{"f1", "f3"}, results)
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], boom))
}

func TestFetchAllStopsOnCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	cfg := Config{now: clock.Now, sleep: clock.Sleep}

	calls := 0
	results, errs := FetchAll(ctx, makeIDs(5), cfg, observability.NewLogger(),
		func(ctx context.Context, id string) (string, error) {
			calls++
			return id, nil
		})

	assert.Zero(t, calls)
	assert.Empty(t, results)
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], context.Canceled))
}

func TestFetchAllBatchSizeNeverBelowOne(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	cfg := Config{BurstRequests: 2, BurstConcurrency: 3, now: clock.Now, sleep: clock.Sleep}

	results, errs := FetchAll(context.Background(), makeIDs(5), cfg, observability.NewLogger(),
		func(ctx context.Context, id string) (string, error) {
			return id, nil
		})

	assert.Empty(t, errs)
	assert.Len(t, results, 5)
}
