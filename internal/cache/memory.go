package cache

import (
	"sort"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore implements Store over an in-memory TTL cache.
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore creates a new memory store. Expired entries are swept on
// the given cleanup interval.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

// Get retrieves an entry, if present and not expired.
func (s *MemoryStore) Get(key string) (*CacheEntry, bool) {
	if val, found := s.cache.Get(key); found {
		return val.(*CacheEntry), true
	}
	return nil, false
}

// Set stores an entry with the given TTL.
func (s *MemoryStore) Set(key string, entry *CacheEntry, ttl time.Duration) {
	s.cache.Set(key, entry, ttl)
}

// Delete removes an entry.
func (s *MemoryStore) Delete(key string) {
	s.cache.Delete(key)
}

// Len returns the number of live entries.
func (s *MemoryStore) Len() int {
	return s.cache.ItemCount()
}

// OldestKeys returns up to n keys ordered by storage time, oldest first.
func (s *MemoryStore) OldestKeys(n int) []string {
	type aged struct {
		key      string
		storedAt time.Time
	}

	items := s.cache.Items()
	all := make([]aged, 0, len(items))
	for key, item := range items {
		entry, ok := item.Object.(*CacheEntry)
		if !ok {
			continue
		}
		all = append(all, aged{key: key, storedAt: entry.StoredAt})
	}

	sort.Slice(all, func(i, j int) bool { return all[i].storedAt.Before(all[j].storedAt) })

	if n > len(all) {
		n = len(all)
	}
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = all[i].key
	}
	return keys
}

// Clear removes all entries.
func (s *MemoryStore) Clear() {
	s.cache.Flush()
}
