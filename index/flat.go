// Package index builds exact nearest-neighbour indexes over sentence
// embeddings.
package index

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/fwojciec/cdpdocs"
)

// Flat is an immutable exact Euclidean-distance index. Position i holds the
// vector, sentence text and source of the same unit.
type Flat struct {
	id        string
	builtAt   time.Time
	dim       int
	vectors   []float32 // len(sentences) * dim, row major
	sentences []string
	sources   []string
}

// Hit is one search result.
type Hit struct {
	Position int
	Distance float32
}

// NewFlat creates a Flat index from co-indexed sentences. Each sentence's
// embedding must have length dim.
func NewFlat(id string, dim int, sentences []cdpdocs.Sentence) (*Flat, error) {
	f := &Flat{
		id:        id,
		builtAt:   time.Now().UTC(),
		dim:       dim,
		vectors:   make([]float32, 0, len(sentences)*dim),
		sentences: make([]string, 0, len(sentences)),
		sources:   make([]string, 0, len(sentences)),
	}
	for i, s := range sentences {
		if len(s.Embedding) != dim {
			return nil, cdpdocs.Errorf(cdpdocs.EINTERNAL, "sentence %d has dimension %d, want %d", i, len(s.Embedding), dim)
		}
		f.vectors = append(f.vectors, s.Embedding...)
		f.sentences = append(f.sentences, s.Text)
		f.sources = append(f.sources, s.Source)
	}
	return f, nil
}

// ID identifies the build that produced the index.
func (f *Flat) ID() string { return f.id }

// Len returns the number of indexed sentences.
func (f *Flat) Len() int { return len(f.sentences) }

// Dimension returns the vector length.
func (f *Flat) Dimension() int { return f.dim }

// Sentence returns the text at position i.
func (f *Flat) Sentence(i int) string { return f.sentences[i] }

// Source returns the source name at position i.
func (f *Flat) Source(i int) string { return f.sources[i] }

// Search returns up to k positions ordered by ascending Euclidean distance
// to query. Ties keep index order. It panics if query has the wrong
// dimension.
func (f *Flat) Search(query []float32, k int) []Hit {
	if len(query) != f.dim {
		panic(fmt.Sprintf("index: query dimension %d does not match index dimension %d", len(query), f.dim))
	}
	if k <= 0 || f.Len() == 0 {
		return nil
	}

	hits := make([]Hit, f.Len())
	for i := range hits {
		row := f.vectors[i*f.dim : (i+1)*f.dim]
		var sum float32
		for j, q := range query {
			d := row[j] - q
			sum += d * d
		}
		hits[i] = Hit{Position: i, Distance: sum}
	}
	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Distance < hits[b].Distance
	})

	if k > len(hits) {
		k = len(hits)
	}
	hits = hits[:k]
	for i := range hits {
		hits[i].Distance = float32(math.Sqrt(float64(hits[i].Distance)))
	}
	return hits
}

// Info summarizes the index.
func (f *Flat) Info() cdpdocs.IndexInfo {
	sources := make(map[string]int)
	for _, s := range f.sources {
		sources[s]++
	}
	return cdpdocs.IndexInfo{
		ID:        f.id,
		Sentences: f.Len(),
		Dimension: f.dim,
		Sources:   sources,
		BuiltAt:   f.builtAt,
	}
}
