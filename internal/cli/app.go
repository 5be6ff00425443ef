package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/pkarpov/linkguard/internal/analyzer"
	"github.com/pkarpov/linkguard/internal/cache"
	"github.com/pkarpov/linkguard/internal/feed"
	"github.com/pkarpov/linkguard/internal/model"
	"github.com/pkarpov/linkguard/internal/store"
	"github.com/pkarpov/linkguard/internal/textscan"
)

func newTextAnalyzer(cfg *model.Config) *textscan.Analyzer {
	return textscan.NewAnalyzer(&cfg.Reference)
}

// app bundles the wired analyzer and the resources it borrows.
type app struct {
	cfg      *model.Config
	analyzer *analyzer.Analyzer
	bolt     *store.BoltStore
}

func (a *app) close() {
	if a.bolt != nil {
		_ = a.bolt.Close()
	}
}

// loadConfig builds the runtime configuration from defaults, the config
// file, and environment variables.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if viper.IsSet("feed.url") {
		cfg.Feed.URL = viper.GetString("feed.url")
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if viper.IsSet("cache.capacity") {
		cfg.Cache.Capacity = viper.GetInt("cache.capacity")
	}
	if viper.IsSet("advisor.enabled") {
		cfg.Advisor.Enabled = viper.GetBool("advisor.enabled")
	}
	if viper.IsSet("advisor.model") {
		cfg.Advisor.Model = viper.GetString("advisor.model")
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.Advisor.APIKey = key
	}
	cfg.Output.Verbose = verbose

	return cfg
}

// newApp wires the analyzer: persistent lists from bolt, the reputation
// feed (refreshed when a URL is configured, static fallback otherwise),
// and the in-memory result cache.
func newApp(ctx context.Context) (*app, error) {
	cfg := loadConfig()

	dir, err := defaultDataDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	bolt, err := store.NewBoltStore(filepath.Join(dir, "linkguard.db"))
	if err != nil {
		return nil, fmt.Errorf("open list database: %w", err)
	}

	reputation := store.NewMemoryReputation("feed")
	if cfg.Feed.URL != "" {
		fetcher := feed.NewHTTPFetcher(cfg.Feed.URL, cfg.Feed.Timeout)
		if cfg.Feed.HTTPProxy != "" || cfg.Feed.HTTPSProxy != "" {
			fetcher.UseProxy(cfg.Feed.HTTPProxy, cfg.Feed.HTTPSProxy)
		}
		refresher := feed.NewRefresher(fetcher, reputation, cfg.Feed)
		if err := refresher.Refresh(ctx); err != nil && verbose {
			fmt.Fprintf(os.Stderr, "feed refresh failed: %v\n", err)
		}
	} else if err := reputation.BulkLoad(feed.FallbackEntries()); err != nil {
		_ = bolt.Close()
		return nil, fmt.Errorf("load fallback feed: %w", err)
	}

	var policy *cache.Policy
	if cfg.Cache.Enabled {
		policy = cache.NewPolicy(cache.NewMemoryStore(time.Minute), cfg.Cache.Capacity)
	}

	var notifier analyzer.Notifier = analyzer.NopNotifier{}
	if verbose {
		notifier = analyzer.LogNotifier{}
	}

	a := analyzer.New(cfg, analyzer.Options{
		Cache:      policy,
		Whitelist:  bolt.Whitelist(),
		Blacklist:  bolt.Blacklist(),
		Reputation: reputation,
		Notifier:   notifier,
	})

	return &app{cfg: cfg, analyzer: a, bolt: bolt}, nil
}
