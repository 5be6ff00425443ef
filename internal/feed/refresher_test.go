package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkarpov/linkguard/internal/model"
	"github.com/pkarpov/linkguard/internal/store"
)

type fakeFetcher struct {
	failures int
	calls    int
	entries  []model.ReputationEntry
}

func (f *fakeFetcher) Fetch(ctx context.Context) ([]model.ReputationEntry, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("upstream unavailable")
	}
	return f.entries, nil
}

func testConfig() model.FeedConfig {
	return model.FeedConfig{MaxRetries: 2, BackoffBase: time.Second, RequestsPerSec: 1000, Burst: 10}
}

func noSleep(delays *[]time.Duration) sleepFunc {
	return func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
}

func TestRefresher_SucceedsFirstTry(t *testing.T) {
	dest := store.NewMemoryReputation("feed")
	fetcher := &fakeFetcher{entries: []model.ReputationEntry{{URL: "https://bad.example.tk/"}}}

	r := NewRefresher(fetcher, dest, testConfig())
	assert.Equal(t, StateIdle, r.State())

	require.NoError(t, r.Refresh(context.Background()))
	assert.Equal(t, StateSucceeded, r.State())
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, 1, dest.Len())
}

func TestRefresher_RetriesWithExponentialBackoff(t *testing.T) {
	dest := store.NewMemoryReputation("feed")
	fetcher := &fakeFetcher{failures: 2, entries: []model.ReputationEntry{{URL: "https://bad.example.tk/"}}}

	r := NewRefresher(fetcher, dest, testConfig())
	var delays []time.Duration
	r.sleep = noSleep(&delays)

	require.NoError(t, r.Refresh(context.Background()))
	assert.Equal(t, StateSucceeded, r.State())
	assert.Equal(t, 3, fetcher.calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, delays)
}

func TestRefresher_FallsBackAfterPersistentFailure(t *testing.T) {
	dest := store.NewMemoryReputation("feed")
	fetcher := &fakeFetcher{failures: 10}

	r := NewRefresher(fetcher, dest, testConfig())
	var delays []time.Duration
	r.sleep = noSleep(&delays)

	require.NoError(t, r.Refresh(context.Background()))
	assert.Equal(t, StateFallenBack, r.State())
	assert.Equal(t, 3, fetcher.calls) // initial try + 2 retries

	// Fallback set is queryable.
	lookup, err := dest.Lookup(context.Background(), "", "secure-paypal-login.tk")
	require.NoError(t, err)
	assert.True(t, lookup.Found)
}

func TestRefresher_ContextCancellationStopsRetries(t *testing.T) {
	dest := store.NewMemoryReputation("feed")
	fetcher := &fakeFetcher{failures: 10}

	r := NewRefresher(fetcher, dest, testConfig())
	r.sleep = func(ctx context.Context, d time.Duration) error { return context.Canceled }

	require.NoError(t, r.Refresh(context.Background()))
	assert.Equal(t, StateFallenBack, r.State())
	assert.Equal(t, 1, fetcher.calls)
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"url":"https://bad.example.tk/","domain":"bad.example.tk","verified":true}]`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL, 5*time.Second)
	entries, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Verified)
}

func TestHTTPFetcher_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL, 5*time.Second)
	_, err := f.Fetch(context.Background())
	assert.Error(t, err)
}
