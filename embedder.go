package cdpdocs

import (
	"context"
	"math"
)

// Embedder maps text to fixed-dimension vectors.
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the length of every vector produced by Embed.
	Dimension() int

	// Close releases model resources.
	Close() error
}

// NormalizeL2 scales v in place to unit Euclidean length.
// A zero vector is left unchanged.
func NormalizeL2(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	norm := float32(1 / math.Sqrt(sum))
	for i := range v {
		v[i] *= norm
	}
}
