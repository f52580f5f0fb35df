package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/fwojciec/cdpdocs"
	"github.com/fwojciec/cdpdocs/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	if deps.Crawler == nil {
		return cdpdocs.Errorf(cdpdocs.EINTERNAL, "crawler not configured")
	}
	deps.Crawler.MaxPages = c.MaxPages
	deps.Crawler.MaxChars = c.MaxChars
	deps.Crawler.Concurrency = c.Concurrency
	if c.Retry {
		deps.Crawler.RetryDelays = crawl.DefaultRetryDelays()
	}
	if !c.Quiet {
		deps.Crawler.Progress = progressPrinter(deps.Stderr, c.MaxPages)
	}

	corpus, results, err := deps.Crawler.CrawlAll(deps.Ctx, deps.Sources)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: crawl interrupted: %s\n", cdpdocs.ErrorMessage(err))
		return err
	}

	for i, res := range results {
		fmt.Fprintf(deps.Stdout, "%-10s %2d pages (%d kept, %d failed, %d links)  %s  %s\n",
			res.Source, res.Visited, res.Kept, res.Failed, res.Discovered,
			crawl.FormatChars(res.Chars), crawl.TruncateURL(deps.Sources[i].URL, 50))
	}

	if err := deps.Store.Save(deps.Ctx, corpus); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cdpdocs.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved corpus for %d sources\n", len(corpus))
	return nil
}

// progressPrinter writes one line per crawl event to w. Sources are crawled
// concurrently, so writes are serialized.
func progressPrinter(w io.Writer, maxPages int) crawl.ProgressFunc {
	if maxPages <= 0 {
		maxPages = crawl.DefaultMaxPages
	}
	var mu sync.Mutex
	return func(event crawl.ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(w, "[%s] crawling %s\n", event.Source, event.URL)
		case crawl.ProgressKept:
			fmt.Fprintf(w, "[%s %d/%d] %s\n", event.Source, event.Visited, maxPages, event.URL)
		case crawl.ProgressSkipped:
			fmt.Fprintf(w, "[%s %d/%d] too short %s\n", event.Source, event.Visited, maxPages, event.URL)
		case crawl.ProgressFailed:
			fmt.Fprintf(w, "[%s %d/%d] skip %s: %s\n", event.Source, event.Visited, maxPages, event.URL, cdpdocs.ErrorMessage(event.Error))
		case crawl.ProgressFinished:
			fmt.Fprintf(w, "[%s] done\n", event.Source)
		}
	}
}
