// Package langcache wraps the preference store with an in-memory
// read-through/write-through cache keyed by durable user identity.
//
// There is no eviction: the cache is bounded by the number of concurrently
// known users and entries are removed only by explicit invalidation.
package langcache

import (
	"context"
	"sync"

	"github.com/langcentral/langcentral/internal/culture"
	"github.com/langcentral/langcentral/internal/prefs"
)

// Service is safe for concurrent use from multiple worker contexts.
// Concurrent Get/Save for the same identity may interleave; the cache entry
// is last-write-wins, the store write being the durability boundary.
type Service struct {
	mu      sync.Mutex
	entries map[culture.UserID]culture.Culture
	repo    prefs.Repository
}

func New(repo prefs.Repository) *Service {
	return &Service{
		entries: make(map[culture.UserID]culture.Culture),
		repo:    repo,
	}
}

// Get returns the culture for id, reading through to the store on a cache
// miss and populating the cache when a record is found. A store miss
// propagates common.ErrorNotFound without populating anything. A persisted
// tag that no longer parses is reported as an error, not as a miss.
func (s *Service) Get(ctx context.Context, id culture.UserID) (culture.Culture, error) {
	s.mu.Lock()
	if c, ok := s.entries[id]; ok {
		s.mu.Unlock()
		return c, nil
	}
	s.mu.Unlock()

	rec, err := s.repo.GetByUserID(ctx, id)
	if err != nil {
		return culture.Culture{}, err
	}

	c, err := culture.Parse(rec.CultureTag)
	if err != nil {
		return culture.Culture{}, err
	}

	s.mu.Lock()
	s.entries[id] = c
	s.mu.Unlock()

	return c, nil
}

// Save writes the preference through to the store. On success the cache
// entry is set unconditionally; on store failure the cache is left untouched
// so it never reflects a write that did not land.
func (s *Service) Save(ctx context.Context, id culture.UserID, c culture.Culture) error {
	if err := s.repo.Upsert(ctx, id, c.Tag()); err != nil {
		return err
	}

	s.mu.Lock()
	s.entries[id] = c
	s.mu.Unlock()

	return nil
}

// Invalidate drops the cache entry for id. The store is untouched.
func (s *Service) Invalidate(id culture.UserID) {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
}
