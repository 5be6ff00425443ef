// Package cache holds analysis results between lookups. TTL and eviction
// are keyed by verdict severity: dangerous results are retained longest but
// re-verified soonest.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/pkarpov/linkguard/internal/model"
)

// CacheEntry pairs a stored result with its storage time. Entries are owned
// exclusively by this package; invalidation produces a new entry rather than
// mutating the old one.
type CacheEntry struct {
	Result   model.AnalysisResult `json:"result"`
	StoredAt time.Time            `json:"stored_at"`
}

// Store is the storage contract the policy drives.
type Store interface {
	Get(key string) (*CacheEntry, bool)
	Set(key string, entry *CacheEntry, ttl time.Duration)
	Delete(key string)
	Len() int
	// OldestKeys returns up to n keys ordered by storage time, oldest first.
	OldestKeys(n int) []string
	Clear()
}

// Key generates a cache key from a URL.
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "linkguard:v1:" + hex.EncodeToString(hash[:])
}
