package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkarpov/linkguard/internal/model"
	"github.com/pkarpov/linkguard/internal/util"
)

// HTTPFetcher pulls the feed as a JSON array of reputation entries.
type HTTPFetcher struct {
	url    string
	client *http.Client
}

// NewHTTPFetcher creates a fetcher for the given feed URL.
func NewHTTPFetcher(url string, timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPFetcher{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// UseProxy routes feed requests through explicit proxies, falling back to
// the standard environment variables when both are empty.
func (f *HTTPFetcher) UseProxy(httpProxy, httpsProxy string) {
	f.client.Transport = &http.Transport{Proxy: util.NewProxyFunc(httpProxy, httpsProxy)}
}

// Fetch downloads and decodes the feed.
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]model.ReputationEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get feed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	var entries []model.ReputationEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	return entries, nil
}
