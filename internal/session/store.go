// Package session provides the ephemeral store that bridges "offers shown"
// and "offer selected". Records are keyed by the probe-reported media id and
// bounded both by entry count (LRU) and by age, so an abandoned conversation
// can never grow process memory without limit.
package session

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ytget/tg-media-bot/internal/model"
)

const (
	DefaultMaxEntries = 512
	DefaultTTL        = 6 * time.Hour
)

// entry holds a session record along with the timestamp it was stored.
type entry struct {
	rec      model.MediaRequest
	storedAt time.Time
}

// Store is a concurrency-safe, bounded media-request store.
type Store struct {
	cache *lru.Cache[string, entry]
	ttl   time.Duration
	now   func() time.Time
}

// New creates a store bounded by maxEntries and ttl. Non-positive arguments
// fall back to the defaults.
func New(maxEntries int, ttl time.Duration) (*Store, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	cache, err := lru.New[string, entry](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("session cache init: %w", err)
	}
	return &Store{cache: cache, ttl: ttl, now: time.Now}, nil
}

// Put stores a record under its media id, overwriting any previous record.
func (s *Store) Put(mediaID string, rec model.MediaRequest) {
	s.cache.Add(mediaID, entry{rec: rec, storedAt: s.now()})
}

// Get returns the record for a media id. Expired records read as misses and
// are dropped.
func (s *Store) Get(mediaID string) (model.MediaRequest, bool) {
	e, ok := s.cache.Get(mediaID)
	if !ok {
		return model.MediaRequest{}, false
	}
	if s.now().Sub(e.storedAt) > s.ttl {
		s.cache.Remove(mediaID)
		return model.MediaRequest{}, false
	}
	return e.rec, true
}

// Len reports the number of live entries, expired or not.
func (s *Store) Len() int {
	return s.cache.Len()
}
