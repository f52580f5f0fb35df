package main

import (
	"fmt"

	"github.com/fwojciec/cdpdocs"
	"github.com/fwojciec/cdpdocs/chi"
	cdpslog "github.com/fwojciec/cdpdocs/slog"
)

// Run executes the serve command. It blocks until the context is cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	if c.Crawl {
		// Zero limits fall back to the crawler defaults.
		if err := (&CrawlCmd{}).Run(deps); err != nil {
			return err
		}
	}

	retriever := cdpslog.NewLoggingRetriever(newRetriever(deps), deps.Logger)
	info, err := retriever.Rebuild(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cdpdocs.ErrorMessage(err))
		return err
	}

	server := chi.NewServer(retriever, deps.Logger)
	if err := server.Open(c.Addr); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cdpdocs.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Serving %d sentences on %s\n", info.Sentences, server.Addr())

	<-deps.Ctx.Done()
	return server.Close()
}
