package cache

import (
	gocache "github.com/patrickmn/go-cache"
)

// MemorySet is an in-memory seen-set. Entries never expire: a run is short
// and a duplicate is a duplicate no matter how far apart the messages are.
type MemorySet struct {
	cache *gocache.Cache
}

// NewMemorySet creates an empty seen-set
func NewMemorySet() *MemorySet {
	return &MemorySet{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// Seen reports whether key was marked before
func (s *MemorySet) Seen(key string) bool {
	_, found := s.cache.Get(key)
	return found
}

// Mark records key as seen
func (s *MemorySet) Mark(key string) {
	s.cache.Set(key, struct{}{}, gocache.NoExpiration)
}

// Len returns the number of distinct keys marked
func (s *MemorySet) Len() int {
	return s.cache.ItemCount()
}

// Reset forgets every key
func (s *MemorySet) Reset() {
	s.cache.Flush()
}
