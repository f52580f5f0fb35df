package mock

import (
	"context"

	"github.com/fwojciec/cdpdocs"
)

var _ cdpdocs.CorpusStore = (*CorpusStore)(nil)

// CorpusStore is a mock implementation of cdpdocs.CorpusStore.
type CorpusStore struct {
	SaveFn func(ctx context.Context, corpus cdpdocs.Corpus) error
	LoadFn func(ctx context.Context) (cdpdocs.Corpus, error)
}

func (s *CorpusStore) Save(ctx context.Context, corpus cdpdocs.Corpus) error {
	return s.SaveFn(ctx, corpus)
}

func (s *CorpusStore) Load(ctx context.Context) (cdpdocs.Corpus, error) {
	return s.LoadFn(ctx)
}

var _ cdpdocs.CorpusInspector = (*CorpusInspector)(nil)

// CorpusInspector is a mock implementation of cdpdocs.CorpusInspector.
type CorpusInspector struct {
	EntriesFn func(ctx context.Context) ([]cdpdocs.CorpusEntry, error)
}

func (i *CorpusInspector) Entries(ctx context.Context) ([]cdpdocs.CorpusEntry, error) {
	return i.EntriesFn(ctx)
}
