package cdpdocs

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the page and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the Fetcher.
	Close() error
}

// FetchResult is the outcome of fetching a single page.
// Exactly one of HTML and Err is meaningful.
type FetchResult struct {
	URL  string
	HTML string
	Err  error
}

// OK reports whether the fetch succeeded.
func (r FetchResult) OK() bool {
	return r.Err == nil
}

// Page represents a crawled documentation page.
type Page struct {
	URL  string
	Text string
}
