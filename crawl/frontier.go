package crawl

import (
	"sync"

	"github.com/fwojciec/cdpdocs"
	"github.com/fwojciec/cdpdocs/bloom"
)

// Compile-time interface verification.
var _ cdpdocs.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO URL frontier for breadth-first crawling.
// URLs are deduplicated by exact string: a URL is accepted at most once
// over the lifetime of the Frontier, whether it is still queued or has
// already been popped. It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu      sync.Mutex
	seen    *bloom.Set
	queue   []string
	visited int
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for the seen-set filter.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		seen: bloom.NewSet(n, fpRate),
	}
}

// Push appends a URL to the queue.
// Returns false if the URL has already been visited or queued.
func (f *Frontier) Push(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.seen.Add(url) {
		return false
	}
	f.queue = append(f.queue, url)
	return true
}

// Pop removes the oldest URL from the queue and counts it as visited.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue[0] = ""
	f.queue = f.queue[1:]
	f.visited++
	return url, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Visited returns the number of URLs popped so far.
func (f *Frontier) Visited() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visited
}

// Discovered returns the number of distinct URLs ever accepted.
func (f *Frontier) Discovered() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Len()
}
