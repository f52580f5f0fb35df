package index_test

import (
	"testing"

	"github.com/fwojciec/cdpdocs"
	"github.com/fwojciec/cdpdocs/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlat_Search(t *testing.T) {
	t.Parallel()

	newIndex := func(t *testing.T) *index.Flat {
		t.Helper()
		f, err := index.NewFlat("test", 2, []cdpdocs.Sentence{
			{Text: "far", Source: "a", Embedding: []float32{10, 10}},
			{Text: "near", Source: "b", Embedding: []float32{1, 0}},
			{Text: "middle", Source: "a", Embedding: []float32{3, 4}},
		})
		require.NoError(t, err)
		return f
	}

	t.Run("orders hits by ascending distance", func(t *testing.T) {
		t.Parallel()

		hits := newIndex(t).Search([]float32{0, 0}, 3)

		require.Len(t, hits, 3)
		assert.Equal(t, []int{1, 2, 0}, []int{hits[0].Position, hits[1].Position, hits[2].Position})
		assert.InDelta(t, 1.0, hits[0].Distance, 1e-6)
		assert.InDelta(t, 5.0, hits[1].Distance, 1e-6)
	})

	t.Run("limits to k", func(t *testing.T) {
		t.Parallel()

		hits := newIndex(t).Search([]float32{0, 0}, 1)

		require.Len(t, hits, 1)
		assert.Equal(t, 1, hits[0].Position)
	})

	t.Run("returns all when k exceeds length", func(t *testing.T) {
		t.Parallel()

		assert.Len(t, newIndex(t).Search([]float32{0, 0}, 10), 3)
	})

	t.Run("returns nothing on empty index", func(t *testing.T) {
		t.Parallel()

		f, err := index.NewFlat("empty", 2, nil)
		require.NoError(t, err)

		assert.Empty(t, f.Search([]float32{0, 0}, 3))
	})

	t.Run("panics on dimension mismatch", func(t *testing.T) {
		t.Parallel()

		f := newIndex(t)

		assert.Panics(t, func() { f.Search([]float32{0, 0, 0}, 3) })
	})
}

func TestFlat_CoIndexed(t *testing.T) {
	t.Parallel()

	f, err := index.NewFlat("id-1", 1, []cdpdocs.Sentence{
		{Text: "one", Source: "segment", Embedding: []float32{1}},
		{Text: "two", Source: "lytics", Embedding: []float32{2}},
		{Text: "three", Source: "segment", Embedding: []float32{3}},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, f.Len())
	assert.Equal(t, "two", f.Sentence(1))
	assert.Equal(t, "lytics", f.Source(1))

	info := f.Info()
	assert.Equal(t, "id-1", info.ID)
	assert.Equal(t, 3, info.Sentences)
	assert.Equal(t, 1, info.Dimension)
	assert.Equal(t, map[string]int{"segment": 2, "lytics": 1}, info.Sources)
	assert.False(t, info.BuiltAt.IsZero())
}

func TestNewFlat_RejectsWrongDimension(t *testing.T) {
	t.Parallel()

	_, err := index.NewFlat("x", 2, []cdpdocs.Sentence{{Text: "a", Embedding: []float32{1}}})

	assert.Equal(t, cdpdocs.EINTERNAL, cdpdocs.ErrorCode(err))
}
