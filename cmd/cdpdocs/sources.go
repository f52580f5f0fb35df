package main

import (
	"fmt"

	"github.com/fwojciec/cdpdocs"
	"github.com/fwojciec/cdpdocs/crawl"
)

// Run executes the sources command. When the store can describe its
// contents, each source also shows what was last crawled for it.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	stored := make(map[string]cdpdocs.CorpusEntry)
	if deps.Inspector != nil {
		entries, err := deps.Inspector.Entries(deps.Ctx)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", cdpdocs.ErrorMessage(err))
			return err
		}
		for _, e := range entries {
			stored[e.Source] = e
		}
	}

	for _, s := range deps.Sources {
		fmt.Fprintf(deps.Stdout, "%-10s %-8s %s", s.Name, s.Strategy, s.URL)
		if deps.Inspector != nil {
			if e, ok := stored[s.Name]; ok {
				fmt.Fprintf(deps.Stdout, "  %s, crawled %s, hash %s",
					crawl.FormatChars(e.Chars), e.UpdatedAt.Format("2006-01-02 15:04"), e.ContentHash)
			} else {
				fmt.Fprint(deps.Stdout, "  not crawled")
			}
		}
		fmt.Fprintln(deps.Stdout)
	}
	return nil
}
