// Package feed refreshes the reputation store from an upstream phishing
// feed. The refresh is modeled as an explicit state machine
// (Idle -> Fetching -> Retrying -> Succeeded|FallenBack) so the fallback
// path is testable on its own; persistent failure loads a small built-in
// pattern set instead of propagating the error.
package feed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/pkarpov/linkguard/internal/model"
	"github.com/pkarpov/linkguard/internal/store"
)

// State names the refresher's position in its lifecycle.
type State string

const (
	StateIdle       State = "idle"
	StateFetching   State = "fetching"
	StateRetrying   State = "retrying"
	StateSucceeded  State = "succeeded"
	StateFallenBack State = "fallen_back"
)

// Fetcher retrieves the upstream entry set.
type Fetcher interface {
	Fetch(ctx context.Context) ([]model.ReputationEntry, error)
}

// sleepFunc is the delay function used between retries (injectable for tests).
type sleepFunc func(ctx context.Context, d time.Duration) error

func defaultSleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Refresher drives feed refreshes into a reputation store.
type Refresher struct {
	fetcher     Fetcher
	dest        store.ReputationStore
	maxRetries  int
	backoffBase time.Duration
	limiter     *rate.Limiter
	sleep       sleepFunc

	mu    sync.Mutex
	state State
}

// NewRefresher creates a refresher. maxRetries counts attempts after the
// first; backoffBase doubles per retry.
func NewRefresher(fetcher Fetcher, dest store.ReputationStore, cfg model.FeedConfig) *Refresher {
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	base := cfg.BackoffBase
	if base <= 0 {
		base = time.Second
	}
	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = 1
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Refresher{
		fetcher:     fetcher,
		dest:        dest,
		maxRetries:  maxRetries,
		backoffBase: base,
		limiter:     rate.NewLimiter(rate.Limit(rps), burst),
		sleep:       defaultSleep,
		state:       StateIdle,
	}
}

// State returns the current lifecycle state.
func (r *Refresher) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Refresher) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}

// Refresh fetches the feed and bulk-loads it into the destination store.
// On persistent failure it loads the built-in fallback set and returns nil;
// the caller can distinguish the outcome via State().
func (r *Refresher) Refresh(ctx context.Context) error {
	r.setState(StateFetching)

	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			r.setState(StateRetrying)
			backoff := r.backoffBase << (attempt - 1)
			if err := r.sleep(ctx, backoff); err != nil {
				lastErr = err
				break
			}
		}

		if err := r.limiter.Wait(ctx); err != nil {
			lastErr = err
			break
		}

		entries, err := r.fetcher.Fetch(ctx)
		if err != nil {
			lastErr = fmt.Errorf("fetch feed: %w", err)
			continue
		}
		if err := r.dest.BulkLoad(entries); err != nil {
			lastErr = fmt.Errorf("load feed: %w", err)
			continue
		}

		r.setState(StateSucceeded)
		return nil
	}

	// Persistent failure: degrade to the built-in pattern set.
	if err := r.dest.BulkLoad(FallbackEntries()); err != nil {
		r.setState(StateFallenBack)
		return fmt.Errorf("load fallback set: %w (after %w)", err, lastErr)
	}
	r.setState(StateFallenBack)
	return nil
}
