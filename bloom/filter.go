// Package bloom provides string sets fronted by Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Set is an exact set of strings with a Bloom filter in front of it.
// Most crawl lookups are for URLs that were never seen; the filter answers
// those without touching the map. Positive filter answers are confirmed
// against the map, so Contains never reports false positives.
// Set is not safe for concurrent use.
type Set struct {
	f     *bloom.BloomFilter
	items map[string]struct{}
}

// NewSet creates a new Set whose filter is sized for n expected items
// with the given false positive rate.
func NewSet(n uint, fpRate float64) *Set {
	return &Set{
		f:     bloom.NewWithEstimates(n, fpRate),
		items: make(map[string]struct{}),
	}
}

// Add inserts key. Returns false if key was already present.
func (s *Set) Add(key string) bool {
	if s.Contains(key) {
		return false
	}
	s.f.AddString(key)
	s.items[key] = struct{}{}
	return true
}

// Contains reports whether key is in the set.
func (s *Set) Contains(key string) bool {
	if !s.f.TestString(key) {
		return false
	}
	_, ok := s.items[key]
	return ok
}

// Len returns the number of items in the set.
func (s *Set) Len() int {
	return len(s.items)
}
