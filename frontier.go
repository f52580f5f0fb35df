package cdpdocs

import "context"

// URLFrontier manages a breadth-first crawl queue with deduplication.
type URLFrontier interface {
	// Push enqueues a URL.
	// Returns false if the URL has already been visited or queued.
	Push(url string) bool

	// Pop dequeues the oldest URL and marks it visited.
	// Returns false if the frontier is empty.
	Pop() (string, bool)

	// Len returns the number of queued URLs.
	Len() int

	// Visited returns the number of URLs popped so far.
	Visited() int
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
