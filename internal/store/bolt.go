package store

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/pkarpov/linkguard/internal/model"
)

const (
	bucketReputation = "reputation"
	bucketRepDomains = "reputation_domains"
	bucketWhitelist  = "whitelist"
	bucketBlacklist  = "blacklist"
)

// BoltStore persists the reputation database and the two lists in a single
// bbolt file.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens a bbolt database at the given path and initializes the
// required buckets.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{bucketReputation, bucketRepDomains, bucketWhitelist, bucketBlacklist} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Reputation returns the reputation view of the store.
func (s *BoltStore) Reputation(source string) ReputationStore {
	return &boltReputation{db: s.db, source: source}
}

// Whitelist returns the whitelist view of the store.
func (s *BoltStore) Whitelist() ListStore {
	return &boltList{db: s.db, bucket: bucketWhitelist}
}

// Blacklist returns the blacklist view of the store.
func (s *BoltStore) Blacklist() ListStore {
	return &boltList{db: s.db, bucket: bucketBlacklist}
}

type boltReputation struct {
	db     *bbolt.DB
	source string
}

func (r *boltReputation) Lookup(ctx context.Context, url, domain string) (model.ReputationLookup, error) {
	if err := ctx.Err(); err != nil {
		return model.ReputationLookup{}, err
	}

	var lookup model.ReputationLookup
	err := r.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket([]byte(bucketReputation)).Get([]byte(url))
		if raw == nil && domain != "" {
			raw = tx.Bucket([]byte(bucketRepDomains)).Get([]byte(strings.ToLower(domain)))
		}
		if raw == nil {
			return nil
		}

		var entry model.ReputationEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return err
		}
		lookup = model.ReputationLookup{
			Found:     true,
			Verified:  entry.Verified,
			Timestamp: entry.Timestamp,
			Source:    r.source,
		}
		return nil
	})
	return lookup, err
}

func (r *boltReputation) BulkLoad(entries []model.ReputationEntry) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		urls := tx.Bucket([]byte(bucketReputation))
		domains := tx.Bucket([]byte(bucketRepDomains))

		for _, e := range entries {
			raw, err := json.Marshal(e)
			if err != nil {
				return err
			}
			if e.URL != "" {
				if err := urls.Put([]byte(e.URL), raw); err != nil {
					return err
				}
			}
			if e.Domain != "" {
				if err := domains.Put([]byte(strings.ToLower(e.Domain)), raw); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

type boltList struct {
	db     *bbolt.DB
	bucket string
}

func (l *boltList) Contains(ctx context.Context, domain string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	domain = strings.ToLower(domain)
	found := false
	err := l.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(l.bucket)).ForEach(func(k, _ []byte) error {
			if listMatches(string(k), domain) {
				found = true
			}
			return nil
		})
	})
	return found, err
}

func (l *boltList) Add(domain string) error {
	return l.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(l.bucket)).Put([]byte(strings.ToLower(domain)), []byte{})
	})
}

func (l *boltList) Remove(domain string) error {
	return l.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(l.bucket)).Delete([]byte(strings.ToLower(domain)))
	})
}

func (l *boltList) Entries() ([]string, error) {
	var out []string
	err := l.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(l.bucket)).ForEach(func(k, _ []byte) error {
			out = append(out, string(k))
			return nil
		})
	})
	return out, err
}
