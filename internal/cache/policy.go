package cache

import (
	"time"

	"github.com/pkarpov/linkguard/internal/model"
)

// Storage retention per verdict class. Re-verification windows are shorter
// than retention: a dangerous hit is kept a week but re-checked hourly.
const (
	TTLSafe       = 24 * time.Hour
	TTLSuspicious = time.Hour
	TTLDangerous  = 7 * 24 * time.Hour
	TTLUnknown    = time.Hour

	ReverifyDangerous  = time.Hour
	ReverifySuspicious = 6 * time.Hour

	// DefaultCapacity caps the number of live entries; the oldest are
	// evicted to stay under it.
	DefaultCapacity = 1000
)

// Policy applies the verdict-keyed TTL and capacity rules over a Store.
type Policy struct {
	store    Store
	capacity int
	now      func() time.Time
}

// NewPolicy creates a policy over the store. capacity <= 0 selects the
// default.
func NewPolicy(store Store, capacity int) *Policy {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Policy{store: store, capacity: capacity, now: time.Now}
}

// SetClock overrides the policy clock, for tests.
func (p *Policy) SetClock(now func() time.Time) { p.now = now }

// TTLFor returns the storage retention for a verdict.
func TTLFor(level model.ThreatLevel) time.Duration {
	switch level {
	case model.ThreatSafe:
		return TTLSafe
	case model.ThreatSuspicious:
		return TTLSuspicious
	case model.ThreatDangerous:
		return TTLDangerous
	default:
		return TTLUnknown
	}
}

// Lookup returns the cached result for a URL. stale reports that the entry
// is past its re-verification window and the caller must re-analyze; the
// entry itself stays in place until a fresh result overwrites it.
func (p *Policy) Lookup(url string) (result *model.AnalysisResult, ok bool, stale bool) {
	entry, found := p.store.Get(Key(url))
	if !found {
		return nil, false, false
	}

	age := p.now().Sub(entry.StoredAt)
	switch entry.Result.ThreatLevel {
	case model.ThreatDangerous:
		stale = age > ReverifyDangerous
	case model.ThreatSuspicious:
		stale = age > ReverifySuspicious
	}

	res := entry.Result
	return &res, true, stale
}

// Store caches a result under its URL, evicting the oldest entries when the
// capacity is reached.
func (p *Policy) Store(result model.AnalysisResult) {
	if p.store.Len() >= p.capacity {
		p.EvictOldest(p.store.Len() - p.capacity + 1)
	}
	entry := &CacheEntry{Result: result, StoredAt: p.now()}
	p.store.Set(Key(result.URL), entry, TTLFor(result.ThreatLevel))
}

// EvictOldest removes the n oldest entries by storage time.
func (p *Policy) EvictOldest(n int) {
	for _, key := range p.store.OldestKeys(n) {
		p.store.Delete(key)
	}
}

// Len returns the number of live entries.
func (p *Policy) Len() int { return p.store.Len() }

// Clear drops all entries.
func (p *Policy) Clear() { p.store.Clear() }
