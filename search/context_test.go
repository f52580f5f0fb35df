package search_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/fwojciec/cdpdocs"
	"github.com/fwojciec/cdpdocs/index"
	"github.com/fwojciec/cdpdocs/mock"
	"github.com/fwojciec/cdpdocs/search"
	"github.com/fwojciec/cdpdocs/xxhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// corpusSource returns a store whose Load serves the latest value of corpus.
type corpusSource struct {
	mu     sync.Mutex
	corpus cdpdocs.Corpus
	err    error
}

func (s *corpusSource) set(c cdpdocs.Corpus, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.corpus, s.err = c, err
}

func (s *corpusSource) store() *mock.CorpusStore {
	return &mock.CorpusStore{
		LoadFn: func(context.Context) (cdpdocs.Corpus, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.corpus, s.err
		},
	}
}

func newContext(src *corpusSource) *search.Context {
	embedder := xxhash.NewEmbedder()
	return search.NewContext(
		src.store(),
		&index.Builder{Embedder: embedder},
		&search.Engine{Embedder: embedder},
		nil,
	)
}

func TestContext_Search(t *testing.T) {
	t.Parallel()

	t.Run("returns sentinel before the first rebuild", func(t *testing.T) {
		t.Parallel()

		c := newContext(&corpusSource{})

		results, err := c.Search(context.Background(), "how do I set up tracking")

		require.NoError(t, err)
		assert.Equal(t, []string{cdpdocs.NoResultsMessage}, results)
		assert.Nil(t, c.Snapshot())
		assert.Equal(t, 0, c.Info().Sentences)
	})

	t.Run("serves the rebuilt index", func(t *testing.T) {
		t.Parallel()

		src := &corpusSource{corpus: cdpdocs.Corpus{
			"segment": "Install the Segment library with your package manager. Short one",
		}}
		c := newContext(src)

		info, err := c.Rebuild(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, info.Sentences)

		results, err := c.Search(context.Background(), "install the library")

		require.NoError(t, err)
		assert.Equal(t, []string{"📌 Install the Segment library with your package manager"}, results)
	})
}

func TestContext_Rebuild(t *testing.T) {
	t.Parallel()

	t.Run("swaps in the new index", func(t *testing.T) {
		t.Parallel()

		src := &corpusSource{corpus: cdpdocs.Corpus{"a": "One sentence here"}}
		c := newContext(src)
		first, err := c.Rebuild(context.Background())
		require.NoError(t, err)

		src.set(cdpdocs.Corpus{"a": "One sentence here. Another sentence here"}, nil)
		second, err := c.Rebuild(context.Background())
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, second.ID, c.Info().ID)
		assert.Equal(t, 2, c.Snapshot().Len())
	})

	t.Run("keeps the previous index when loading fails", func(t *testing.T) {
		t.Parallel()

		src := &corpusSource{corpus: cdpdocs.Corpus{"a": "One sentence here"}}
		c := newContext(src)
		before, err := c.Rebuild(context.Background())
		require.NoError(t, err)

		src.set(nil, errors.New("disk gone"))
		_, err = c.Rebuild(context.Background())

		require.Error(t, err)
		assert.Equal(t, before.ID, c.Info().ID)
	})

	t.Run("keeps the previous index when building fails", func(t *testing.T) {
		t.Parallel()

		src := &corpusSource{corpus: cdpdocs.Corpus{"a": "One sentence here"}}
		good := xxhash.NewEmbedder()
		calls := 0
		embedder := &mock.Embedder{
			DimensionFn: good.Dimension,
			EmbedFn: func(ctx context.Context, texts []string) ([][]float32, error) {
				calls++
				if calls > 1 {
					return nil, errors.New("embedding failed")
				}
				return good.Embed(ctx, texts)
			},
		}
		c := search.NewContext(src.store(), &index.Builder{Embedder: embedder}, &search.Engine{Embedder: good}, nil)
		before, err := c.Rebuild(context.Background())
		require.NoError(t, err)

		_, err = c.Rebuild(context.Background())

		require.Error(t, err)
		assert.Equal(t, before.ID, c.Info().ID)
	})

	t.Run("serves queries while rebuilding", func(t *testing.T) {
		t.Parallel()

		src := &corpusSource{corpus: cdpdocs.Corpus{"a": "Connect your warehouse to the destination today"}}
		c := newContext(src)
		_, err := c.Rebuild(context.Background())
		require.NoError(t, err)

		var wg sync.WaitGroup
		for range 4 {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, err := c.Rebuild(context.Background())
				assert.NoError(t, err)
			}()
			go func() {
				defer wg.Done()
				results, err := c.Search(context.Background(), "connect warehouse")
				assert.NoError(t, err)
				assert.Len(t, results, 1)
			}()
		}
		wg.Wait()
	})
}

func TestContext_Swap(t *testing.T) {
	t.Parallel()

	t.Run("ignores a nil index", func(t *testing.T) {
		t.Parallel()

		c := newContext(&corpusSource{})
		idx, err := index.NewFlat("first", 384, nil)
		require.NoError(t, err)
		c.Swap(idx)

		assert.NotPanics(t, func() { c.Swap(nil) })
		assert.Same(t, idx, c.Snapshot())
	})

	t.Run("ignores nil before the first index", func(t *testing.T) {
		t.Parallel()

		c := newContext(&corpusSource{})

		assert.NotPanics(t, func() { c.Swap(nil) })
		assert.Nil(t, c.Snapshot())
	})
}
