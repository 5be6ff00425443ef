// Package store provides the external stores the analyzer consults: a
// reputation database of known-bad URLs and substring-matched whitelist and
// blacklist sets. Memory implementations back tests and single runs; the
// bbolt implementations persist across runs.
package store

import (
	"context"
	"strings"

	"github.com/pkarpov/linkguard/internal/model"
)

// ReputationStore is the read contract over the known-phishing database.
// Implementations must treat "not yet loaded" as found=false rather than
// blocking; lookups are bounded by the caller's context.
type ReputationStore interface {
	Lookup(ctx context.Context, url, domain string) (model.ReputationLookup, error)
	BulkLoad(entries []model.ReputationEntry) error
}

// ListStore is the membership contract for the whitelist and blacklist.
type ListStore interface {
	Contains(ctx context.Context, domain string) (bool, error)
	Add(domain string) error
	Remove(domain string) error
	Entries() ([]string, error)
}

// listMatches implements the documented bidirectional substring membership
// test: an entry matches when it contains the queried domain or the queried
// domain contains it. Entry "a.com" therefore matches "notcompromised-a.com"
// and vice versa; preserved as-is rather than tightened to suffix matching.
func listMatches(entry, domain string) bool {
	return strings.Contains(entry, domain) || strings.Contains(domain, entry)
}
