package main

import (
	"fmt"

	"github.com/fwojciec/cdpdocs"
	"github.com/fwojciec/cdpdocs/index"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	corpus, err := deps.Store.Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cdpdocs.ErrorMessage(err))
		return err
	}
	if len(corpus) == 0 {
		fmt.Fprintln(deps.Stderr, "error: corpus is empty. Run 'cdpdocs crawl' first.")
		return cdpdocs.Errorf(cdpdocs.ENOTFOUND, "corpus is empty")
	}

	builder := &index.Builder{Embedder: deps.Embedder, Logger: deps.Logger}
	idx, err := builder.Build(deps.Ctx, corpus)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cdpdocs.ErrorMessage(err))
		return err
	}

	info := idx.Info()
	for _, name := range corpus.Names() {
		fmt.Fprintf(deps.Stdout, "%-10s %5d sentences\n", name, info.Sources[name])
	}
	fmt.Fprintf(deps.Stdout, "Index %s: %d sentences, dimension %d\n", info.ID, info.Sentences, info.Dimension)
	return nil
}
