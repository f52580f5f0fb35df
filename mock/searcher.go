package mock

import (
	"context"

	"github.com/fwojciec/cdpdocs"
)

var _ cdpdocs.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of cdpdocs.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, question string) ([]string, error)
}

func (s *Searcher) Search(ctx context.Context, question string) ([]string, error) {
	return s.SearchFn(ctx, question)
}

var _ cdpdocs.Retriever = (*Retriever)(nil)

// Retriever is a mock implementation of cdpdocs.Retriever.
type Retriever struct {
	SearchFn  func(ctx context.Context, question string) ([]string, error)
	RebuildFn func(ctx context.Context) (cdpdocs.IndexInfo, error)
	InfoFn    func() cdpdocs.IndexInfo
}

func (r *Retriever) Search(ctx context.Context, question string) ([]string, error) {
	return r.SearchFn(ctx, question)
}

func (r *Retriever) Rebuild(ctx context.Context) (cdpdocs.IndexInfo, error) {
	return r.RebuildFn(ctx)
}

func (r *Retriever) Info() cdpdocs.IndexInfo {
	return r.InfoFn()
}
