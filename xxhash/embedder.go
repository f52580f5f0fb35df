// Package xxhash provides a dependency-free text embedder based on feature
// hashing. Words and adjacent word pairs are hashed with xxhash into a fixed
// number of buckets, so texts sharing vocabulary land near each other.
package xxhash

import (
	"context"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/cdpdocs"
)

// DefaultDimension matches the all-MiniLM-L6-v2 sentence embedding size.
const DefaultDimension = 384

// Ensure Embedder implements cdpdocs.Embedder at compile time.
var _ cdpdocs.Embedder = (*Embedder)(nil)

// Embedder implements cdpdocs.Embedder with signed feature hashing.
// It is deterministic and safe for concurrent use.
type Embedder struct {
	dim     int
	bigrams bool
}

// Option configures an Embedder.
type Option func(*Embedder)

// WithDimension sets the vector dimension.
func WithDimension(dim int) Option {
	return func(e *Embedder) {
		if dim > 0 {
			e.dim = dim
		}
	}
}

// WithBigrams enables or disables adjacent word pair features.
func WithBigrams(enabled bool) Option {
	return func(e *Embedder) {
		e.bigrams = enabled
	}
}

// NewEmbedder creates a new hashing Embedder.
func NewEmbedder(opts ...Option) *Embedder {
	e := &Embedder{dim: DefaultDimension, bigrams: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Embed returns one unit-length vector per text. Texts without any word
// characters map to the zero vector.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = e.embed(text)
	}
	return out, nil
}

func (e *Embedder) embed(text string) []float32 {
	v := make([]float32, e.dim)
	words := Tokenize(text)
	for i, w := range words {
		e.add(v, w, 1)
		if e.bigrams && i > 0 {
			e.add(v, words[i-1]+" "+w, 0.5)
		}
	}
	cdpdocs.NormalizeL2(v)
	return v
}

// add hashes feature into a bucket; the top bit of the hash picks the sign
// so collisions tend to cancel rather than accumulate.
func (e *Embedder) add(v []float32, feature string, weight float32) {
	h := xxhash.Sum64String(feature)
	bucket := h % uint64(e.dim)
	if h>>63 == 1 {
		weight = -weight
	}
	v[bucket] += weight
}

// Dimension returns the vector length.
func (e *Embedder) Dimension() int {
	return e.dim
}

// Close is a no-op.
func (e *Embedder) Close() error {
	return nil
}

// Tokenize lowercases text and splits it into runs of letters and digits.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
