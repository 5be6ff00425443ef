package store

import (
	"context"
	"strings"
	"sync"

	"github.com/pkarpov/linkguard/internal/model"
)

// MemoryReputation is an in-memory reputation store.
type MemoryReputation struct {
	mu       sync.RWMutex
	byURL    map[string]model.ReputationEntry
	byDomain map[string]model.ReputationEntry
	source   string
}

// NewMemoryReputation creates an empty in-memory reputation store. The
// source label is reported on every hit.
func NewMemoryReputation(source string) *MemoryReputation {
	return &MemoryReputation{
		byURL:    make(map[string]model.ReputationEntry),
		byDomain: make(map[string]model.ReputationEntry),
		source:   source,
	}
}

// Lookup checks the URL first, then its domain.
func (s *MemoryReputation) Lookup(ctx context.Context, url, domain string) (model.ReputationLookup, error) {
	if err := ctx.Err(); err != nil {
		return model.ReputationLookup{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if entry, ok := s.byURL[url]; ok {
		return model.ReputationLookup{Found: true, Verified: entry.Verified, Timestamp: entry.Timestamp, Source: s.source}, nil
	}
	if domain != "" {
		if entry, ok := s.byDomain[strings.ToLower(domain)]; ok {
			return model.ReputationLookup{Found: true, Verified: entry.Verified, Timestamp: entry.Timestamp, Source: s.source}, nil
		}
	}
	return model.ReputationLookup{}, nil
}

// BulkLoad replaces nothing; entries are merged in.
func (s *MemoryReputation) BulkLoad(entries []model.ReputationEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range entries {
		if e.URL != "" {
			s.byURL[e.URL] = e
		}
		if e.Domain != "" {
			s.byDomain[strings.ToLower(e.Domain)] = e
		}
	}
	return nil
}

// Len returns the number of distinct URLs loaded.
func (s *MemoryReputation) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byURL)
}

// MemoryList is an in-memory whitelist or blacklist.
type MemoryList struct {
	mu      sync.RWMutex
	entries map[string]struct{}
}

// NewMemoryList creates a list seeded with the given domains.
func NewMemoryList(seed ...string) *MemoryList {
	l := &MemoryList{entries: make(map[string]struct{}, len(seed))}
	for _, d := range seed {
		l.entries[strings.ToLower(d)] = struct{}{}
	}
	return l
}

// Contains applies the bidirectional substring membership test.
func (l *MemoryList) Contains(ctx context.Context, domain string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	domain = strings.ToLower(domain)
	for entry := range l.entries {
		if listMatches(entry, domain) {
			return true, nil
		}
	}
	return false, nil
}

// Add inserts a domain.
func (l *MemoryList) Add(domain string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[strings.ToLower(domain)] = struct{}{}
	return nil
}

// Remove deletes a domain.
func (l *MemoryList) Remove(domain string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, strings.ToLower(domain))
	return nil
}

// Entries returns the stored domains.
func (l *MemoryList) Entries() ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]string, 0, len(l.entries))
	for entry := range l.entries {
		out = append(out, entry)
	}
	return out, nil
}
