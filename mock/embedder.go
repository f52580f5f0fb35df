package mock

import (
	"context"

	"github.com/fwojciec/cdpdocs"
)

var _ cdpdocs.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of cdpdocs.Embedder.
type Embedder struct {
	EmbedFn     func(ctx context.Context, texts []string) ([][]float32, error)
	DimensionFn func() int
	CloseFn     func() error
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedFn(ctx, texts)
}

func (e *Embedder) Dimension() int {
	return e.DimensionFn()
}

func (e *Embedder) Close() error {
	return e.CloseFn()
}
