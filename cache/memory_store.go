package cache

import (
	"context"
	"sync"
)

// MemoryStore is a mutex-guarded in-process Store. No expiration runs
// here: stale entries must survive so the freshness cache can fall back
// to them when a refresh fails.
type MemoryStore struct {
	data  map[string]*Entry
	mutex sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]*Entry),
	}
}

func (s *MemoryStore) Load(ctx context.Context, key string) (*Entry, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	entry, exists := s.data[key]
	if !exists {
		return nil, false
	}
	return entry, true
}

func (s *MemoryStore) Put(ctx context.Context, key string, entry *Entry) {
	if entry == nil {
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data[key] = entry
}

func (s *MemoryStore) Delete(ctx context.Context, key string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.data, key)
}

func (s *MemoryStore) Clear(ctx context.Context) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data = make(map[string]*Entry)
}
