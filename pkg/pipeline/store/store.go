// Package store provides a thread-safe, in-memory keyed dataset store.
//
// The pipeline uses it for the outputs that only live for one run. MemoryStore
// also satisfies binder.Store and can serve as the external store of a pipeline.
package store

import (
	"sort"
	"sync"

	"github.com/askiada/go-transform-pipeline/pkg/pipeline/binder"
	"github.com/askiada/go-transform-pipeline/pkg/pipeline/model"
)

// MemoryStore maps keys to datasets.
type MemoryStore struct {
	lock   sync.RWMutex
	values map[string]model.DataValue
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]model.DataValue),
	}
}

// Get returns the value stored under key.
func (s *MemoryStore) Get(key string) (model.DataValue, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	v, ok := s.values[key]

	return v, ok
}

// Set stores value under key, replacing any previous value.
func (s *MemoryStore) Set(key string, value model.DataValue) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.values[key] = value
}

// Delete removes key. It reports whether the key existed.
func (s *MemoryStore) Delete(key string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.values[key]; !ok {
		return false
	}
	delete(s.values, key)

	return true
}

// Keys returns the sorted list of keys.
func (s *MemoryStore) Keys() []string {
	s.lock.RLock()
	defer s.lock.RUnlock()

	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Len returns the number of stored values.
func (s *MemoryStore) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return len(s.values)
}

// Reset drops every value.
func (s *MemoryStore) Reset() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.values = make(map[string]model.DataValue)
}

var _ binder.Store = (*MemoryStore)(nil)
