//go:build !cgo

package onnx

import (
	"context"

	"github.com/fwojciec/cdpdocs"
)

// Embedder is unavailable without CGO.
type Embedder struct{}

// NewEmbedder returns an error when built without CGO.
func NewEmbedder(Config) (*Embedder, error) {
	return nil, cdpdocs.Errorf(cdpdocs.EUNAVAILABLE, "onnx embedder requires CGO; build with CGO_ENABLED=1 and onnxruntime")
}

func (e *Embedder) Embed(context.Context, []string) ([][]float32, error) {
	return nil, cdpdocs.Errorf(cdpdocs.EUNAVAILABLE, "onnx embedder requires CGO")
}

func (e *Embedder) Dimension() int { return 0 }

func (e *Embedder) Close() error { return nil }
