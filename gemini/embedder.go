// Package gemini provides a cdpdocs.Embedder backed by the Gemini embedding API.
package gemini

import (
	"context"

	"github.com/fwojciec/cdpdocs"
	"google.golang.org/genai"
)

// Embedding defaults.
const (
	DefaultModel     = "gemini-embedding-001"
	DefaultDimension = 768
)

// Ensure Embedder implements cdpdocs.Embedder at compile time.
var _ cdpdocs.Embedder = (*Embedder)(nil)

// Embedder implements cdpdocs.Embedder using Google Gemini embeddings.
type Embedder struct {
	client *genai.Client
	model  string
	dim    int
}

// Option configures an Embedder.
type Option func(*Embedder)

// WithModel sets the embedding model name.
func WithModel(model string) Option {
	return func(e *Embedder) {
		if model != "" {
			e.model = model
		}
	}
}

// WithDimension sets the requested output dimensionality.
func WithDimension(dim int) Option {
	return func(e *Embedder) {
		if dim > 0 {
			e.dim = dim
		}
	}
}

// NewEmbedder creates a new Embedder.
func NewEmbedder(client *genai.Client, opts ...Option) *Embedder {
	e := &Embedder{client: client, model: DefaultModel, dim: DefaultDimension}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewClient creates a Gemini API client for apiKey.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, cdpdocs.Errorf(cdpdocs.EINVALID, "gemini API key required")
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

// Embed sends all texts in a single request and returns the vectors in
// input order, normalized to unit length.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, "user")
	}
	dim := int32(e.dim)

	res, err := e.client.Models.EmbedContent(ctx, e.model, contents, &genai.EmbedContentConfig{
		OutputDimensionality: &dim,
	})
	if err != nil {
		return nil, err
	}
	if res == nil || len(res.Embeddings) != len(texts) {
		return nil, cdpdocs.Errorf(cdpdocs.EINTERNAL, "gemini returned %d embeddings for %d texts", embeddingCount(res), len(texts))
	}

	out := make([][]float32, len(texts))
	for i, emb := range res.Embeddings {
		if emb == nil || len(emb.Values) != e.dim {
			return nil, cdpdocs.Errorf(cdpdocs.EINTERNAL, "gemini embedding %d has wrong dimension", i)
		}
		v := make([]float32, e.dim)
		copy(v, emb.Values)
		cdpdocs.NormalizeL2(v)
		out[i] = v
	}
	return out, nil
}

func embeddingCount(res *genai.EmbedContentResponse) int {
	if res == nil {
		return 0
	}
	return len(res.Embeddings)
}

// Dimension returns the configured output dimensionality.
func (e *Embedder) Dimension() int {
	return e.dim
}

// Close is a no-op; the genai client holds no releasable resources.
func (e *Embedder) Close() error {
	return nil
}
