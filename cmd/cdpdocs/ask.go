package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/cdpdocs"
	"github.com/fwojciec/cdpdocs/chi"
	"github.com/fwojciec/cdpdocs/index"
	"github.com/fwojciec/cdpdocs/search"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	if strings.TrimSpace(c.Question) == "" {
		fmt.Fprintln(deps.Stderr, "error: question is required")
		return cdpdocs.Errorf(cdpdocs.EINVALID, "question is required")
	}

	retriever := newRetriever(deps)
	if _, err := retriever.Rebuild(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cdpdocs.ErrorMessage(err))
		return err
	}
	if idx := retriever.Snapshot(); idx == nil || idx.Len() == 0 {
		fmt.Fprintln(deps.Stderr, "hint: the corpus is empty. Run 'cdpdocs crawl' first.")
	}

	results, err := retriever.Search(deps.Ctx, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cdpdocs.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, strings.Join(results, chi.AnswerSeparator))
	return nil
}

// newRetriever builds a retrieval context over the configured store and embedder.
func newRetriever(deps *Dependencies) *search.Context {
	builder := &index.Builder{Embedder: deps.Embedder, Logger: deps.Logger}
	engine := &search.Engine{Embedder: deps.Embedder}
	return search.NewContext(deps.Store, builder, engine, deps.Logger)
}
