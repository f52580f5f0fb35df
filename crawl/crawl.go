// Package crawl provides documentation crawling orchestration.
// It coordinates breadth-first traversal, fetching, and extraction of
// documentation pages into per-source corpus text.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/cdpdocs"
	"golang.org/x/sync/errgroup"
)

// Crawl defaults.
const (
	DefaultMaxPages     = 10
	DefaultMaxChars     = 50000
	DefaultMinPageChars = 50
	DefaultConcurrency  = 4
)

// Frontier configuration.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 1000
	// frontierFalsePositiveRate is the acceptable false positive rate for the fast path.
	frontierFalsePositiveRate = 0.01
)

// PageMarker prefixes every page block in the corpus text.
const PageMarker = "📖 "

// Crawler orchestrates the crawling of documentation sources.
type Crawler struct {
	// Direct fetches pages for sources with the direct strategy.
	Direct cdpdocs.Fetcher
	// Rendered fetches pages for sources with the rendered strategy.
	Rendered cdpdocs.Fetcher

	Extractor cdpdocs.Extractor
	Links     cdpdocs.LinkSelector

	// RateLimiter is optional. When set, every fetch waits on the URL's host.
	RateLimiter cdpdocs.DomainLimiter
	Logger      *slog.Logger

	// Progress, if set, receives an event per visited page. CrawlAll calls
	// it from multiple goroutines.
	Progress ProgressFunc

	MaxPages     int
	MaxChars     int
	MinPageChars int
	Concurrency  int

	// RetryDelays are the waits before retrying a transient fetch failure.
	// Empty means every URL is fetched exactly once.
	RetryDelays []time.Duration
}

// Result holds the outcome of crawling one source.
type Result struct {
	Source  string
	Text    string
	Visited int
	Failed  int
	Kept    int
	Chars   int
	// Discovered counts distinct links enqueued, the seed excluded.
	Discovered int
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type    ProgressType
	Source  string
	URL     string
	Visited int
	Error   error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressKept
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Crawl performs a bounded breadth-first traversal of a source starting at
// its seed URL and returns the accumulated text. Failed fetches and
// extraction misses are skipped; they never abort the crawl. An error is
// returned only for an invalid source or a missing fetcher.
func (c *Crawler) Crawl(ctx context.Context, source cdpdocs.Source) (*Result, error) {
	if err := source.Validate(); err != nil {
		return nil, err
	}
	fetcher := c.fetcherFor(source.Strategy)
	if fetcher == nil {
		return nil, cdpdocs.Errorf(cdpdocs.EINVALID, "no fetcher configured for %s strategy", source.Strategy)
	}
	if c.Extractor == nil {
		return nil, cdpdocs.Errorf(cdpdocs.EINVALID, "extractor required")
	}

	logger := c.logger().With("source", source.Name)
	maxPages := orDefault(c.MaxPages, DefaultMaxPages)
	maxChars := orDefault(c.MaxChars, DefaultMaxChars)
	minChars := orDefault(c.MinPageChars, DefaultMinPageChars)
	// Rendered sources are captured from the seed page alone.
	followLinks := source.Strategy == cdpdocs.StrategyDirect && c.Links != nil
	if source.Strategy == cdpdocs.StrategyRendered {
		maxPages = 1
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(source.URL)

	result := &Result{Source: source.Name}
	var corpusText strings.Builder
	chars := 0

	c.notify(ProgressEvent{Type: ProgressStarted, Source: source.Name, URL: source.URL})

	for frontier.Visited() < maxPages && chars < maxChars {
		if ctx.Err() != nil {
			logger.Warn("crawl interrupted", "err", ctx.Err())
			break
		}
		pageURL, ok := frontier.Pop()
		if !ok {
			break
		}
		result.Visited = frontier.Visited()

		if err := c.wait(ctx, pageURL); err != nil {
			break
		}

		res := FetchWithRetryDelays(ctx, pageURL, fetcher.Fetch, logger, c.RetryDelays)
		if !res.OK() {
			result.Failed++
			logger.Warn("skip page", "url", pageURL, "err", res.Err)
			c.notify(ProgressEvent{Type: ProgressFailed, Source: source.Name, URL: pageURL, Visited: result.Visited, Error: res.Err})
			continue
		}

		if followLinks {
			links, err := c.Links.ExtractLinks(res.HTML, source.URL)
			if err != nil {
				logger.Debug("link extraction failed", "url", pageURL, "err", err)
			}
			for _, link := range links {
				frontier.Push(link)
			}
		}

		text, err := c.Extractor.Extract(res.HTML)
		if err != nil {
			logger.Debug("extraction failed", "url", pageURL, "err", err)
			text = ""
		}
		if utf8.RuneCountInString(text) <= minChars {
			c.notify(ProgressEvent{Type: ProgressSkipped, Source: source.Name, URL: pageURL, Visited: result.Visited})
			continue
		}

		page := cdpdocs.Page{URL: pageURL, Text: TruncateRunes(text, source.PageLimit())}
		chars += writePage(&corpusText, page)
		result.Kept++
		c.notify(ProgressEvent{Type: ProgressKept, Source: source.Name, URL: pageURL, Visited: result.Visited})
	}

	result.Discovered = frontier.Discovered() - 1
	result.Text = TruncateRunes(corpusText.String(), maxChars)
	result.Chars = utf8.RuneCountInString(result.Text)

	logger.Info("crawled source",
		"visited", result.Visited,
		"kept", result.Kept,
		"failed", result.Failed,
		"discovered", result.Discovered,
		"chars", result.Chars)
	c.notify(ProgressEvent{Type: ProgressFinished, Source: source.Name, Visited: result.Visited})

	return result, nil
}

// CrawlAll crawls every source concurrently and returns a corpus with an
// entry for every source. A source whose crawl fails contributes an empty
// string. Results are returned in the order of sources.
func (c *Crawler) CrawlAll(ctx context.Context, sources []cdpdocs.Source) (cdpdocs.Corpus, []*Result, error) {
	corpus := make(cdpdocs.Corpus, len(sources))
	results := make([]*Result, len(sources))
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(orDefault(c.Concurrency, DefaultConcurrency))

	for i, source := range sources {
		g.Go(func() error {
			res, err := c.Crawl(ctx, source)
			if err != nil {
				c.logger().Error("crawl failed", "source", source.Name, "err", err)
				res = &Result{Source: source.Name}
			}

			mu.Lock()
			defer mu.Unlock()
			corpus[source.Name] = res.Text
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return corpus, results, err
	}
	return corpus, results, nil
}

// writePage appends the block for page to b and returns its length in runes.
func writePage(b *strings.Builder, page cdpdocs.Page) int {
	block := PageMarker + page.URL + "\n" + page.Text + "\n\n"
	b.WriteString(block)
	return utf8.RuneCountInString(block)
}

func (c *Crawler) fetcherFor(strategy cdpdocs.FetchStrategy) cdpdocs.Fetcher {
	switch strategy {
	case cdpdocs.StrategyDirect:
		return c.Direct
	case cdpdocs.StrategyRendered:
		return c.Rendered
	}
	return nil
}

func (c *Crawler) wait(ctx context.Context, rawURL string) error {
	if c.RateLimiter == nil {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	return c.RateLimiter.Wait(ctx, u.Host)
}

func (c *Crawler) notify(event ProgressEvent) {
	if c.Progress != nil {
		c.Progress(event)
	}
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
