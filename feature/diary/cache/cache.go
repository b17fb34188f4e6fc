package cache

import (
	"sync"

	"diary-store/feature/diary/models"

	"golang.org/x/sync/singleflight"
)

// Mapping is a decoded set of entries keyed by diary_id.
type Mapping = map[string]*models.Entry

// Store is a process-local cache of decoded entry mappings keyed by date
// (month granularity in practice; the key shape is the caller's choice).
//
// The cache is pure memoization of the load-and-decode step: a cached
// mapping must be behaviorally equivalent to a fresh load from the backing
// store, and it is never authoritative. There is no TTL; the engine
// overwrites a key whenever the underlying data changed, and eviction
// beyond that is a caller concern.
type Store struct {
	mu       sync.RWMutex
	mappings map[string]Mapping
	sf       singleflight.Group
}

// New returns an empty cache store.
func New() *Store {
	return &Store{mappings: make(map[string]Mapping)}
}

// Get returns the cached mapping for key, if any.
func (s *Store) Get(key string) (Mapping, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.mappings[key]
	return m, ok
}

// Put stores the mapping for key, replacing any previous value.
func (s *Store) Put(key string, m Mapping) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mappings[key] = m
}

// GetOrBuild returns the cached mapping for key, building and storing it
// with build on a miss. Concurrent misses for the same key share a single
// build via singleflight. hit reports whether the value came from the
// cache rather than a fresh build.
func (s *Store) GetOrBuild(key string, build func() (Mapping, error)) (m Mapping, hit bool, err error) {
	// Fast path.
	s.mu.RLock()
	m, ok := s.mappings[key]
	s.mu.RUnlock()
	if ok {
		return m, true, nil
	}

	// Slow path: build under singleflight to prevent stampedes.
	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		// Double-check after acquiring the singleflight slot.
		s.mu.RLock()
		m, ok := s.mappings[key]
		s.mu.RUnlock()
		if ok {
			return m, nil
		}

		built, err := build()
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.mappings[key] = built
		s.mu.Unlock()
		return built, nil
	})
	if err != nil {
		return nil, false, err
	}
	return result.(Mapping), false, nil
}

// Invalidate removes the cached mapping for key, forcing the next load to
// rebuild from the backing store.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.mappings, key)
}
