package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"statsync-server/internal/observability"
)

// Config controls the two-tier fetch quota: up to BurstRequests inside
// BurstWindow, issued BurstConcurrency at a time with launches Stagger
// apart, then a steady pace of one request per SteadyDelay.
type Config struct {
	BurstRequests    int
	BurstWindow      time.Duration
	BurstConcurrency int
	Stagger          time.Duration
	SteadyDelay      time.Duration

	// Injectable for deterministic tests.
	now   func() time.Time
	sleep func(time.Duration)
}

func (c Config) withDefaults() Config {
	if c.BurstRequests == 0 {
		c.BurstRequests = 30
	}
	if c.BurstWindow == 0 {
		c.BurstWindow = 10 * time.Second
	}
	if c.BurstConcurrency == 0 {
		c.BurstConcurrency = 3
	}
	if c.Stagger == 0 {
		c.Stagger = 100 * time.Millisecond
	}
	if c.SteadyDelay == 0 {
		c.SteadyDelay = time.Second
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.sleep == nil {
		c.sleep = time.Sleep
	}
	return c
}

// FetchAll fetches every id under the configured quota and returns the
// successful results in completion order. A failing id is logged and
// excluded without aborting the rest; the errors are returned alongside.
// Context cancellation stops scheduling and surfaces as a final error.
func FetchAll[T any](ctx context.Context, ids []string, cfg Config, logger *observability.Logger, fetch func(context.Context, string) (T, error)) ([]T, []error) {
	cfg = cfg.withDefaults()
	start := cfg.now()

	results := make([]T, 0, len(ids))
	var errs []error

	queue := ids
	burstUsed := 0
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			return results, errs
		}

		size := 1
		inBurst := cfg.now().Sub(start) < cfg.BurstWindow && burstUsed < cfg.BurstRequests
		if inBurst {
			size = cfg.BurstConcurrency
			if remaining := cfg.BurstRequests - burstUsed; size > remaining {
				size = remaining
			}
			if size > len(queue) {
				size = len(queue)
			}
			if size < 1 {
				size = 1
			}
		} else {
			cfg.sleep(cfg.SteadyDelay)
		}

		// Ids beyond the batch stay at the front of the queue; nothing is
		// skipped or reordered.
		batch := queue[:size]
		queue = queue[size:]

		type outcome struct {
			value T
			err   error
		}
		outcomes := make([]outcome, len(batch))
		var wg sync.WaitGroup
		for i, id := range batch {
			if i > 0 {
				cfg.sleep(cfg.Stagger)
			}
			wg.Add(1)
			go func(i int, id string) {
				defer wg.Done()
				value, err := fetch(ctx, id)
				if err != nil {
					outcomes[i] = outcome{err: fmt.Errorf("fetch %s: %w", id, err)}
					return
				}
				outcomes[i] = outcome{value: value}
			}(i, id)
		}
		wg.Wait()

		for _, o := range outcomes {
			if o.err != nil {
				logger.Error(ctx, "scheduled fetch failed", o.err)
				errs = append(errs, o.err)
				continue
			}
			results = append(results, o.value)
		}

		burstUsed += len(batch)
		if inBurst && len(queue) > 0 {
			// Keeps the burst within its per-second allowance.
			cfg.sleep(cfg.SteadyDelay)
		}
	}
	return results, errs
}
