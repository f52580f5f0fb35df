package index

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/cdpdocs"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// SentenceDelimiter separates sentences in corpus text.
const SentenceDelimiter = ". "

// Builder defaults.
const (
	DefaultBatchSize   = 64
	DefaultConcurrency = 4
)

// Builder turns a corpus into a Flat index.
type Builder struct {
	Embedder cdpdocs.Embedder
	Logger   *slog.Logger

	// BatchSize is the number of sentences per Embed call.
	BatchSize int
	// Concurrency bounds the number of Embed calls in flight.
	Concurrency int
}

// SplitSentences splits text on SentenceDelimiter and drops blank pieces.
// The remaining pieces are returned unmodified.
func SplitSentences(text string) []string {
	var out []string
	for _, s := range strings.Split(text, SentenceDelimiter) {
		if strings.TrimSpace(s) == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Build splits every source into sentences, embeds them and returns a new
// index. Sources are processed in name order. Empty sources are skipped
// with a warning; a corpus without sentences yields an empty index.
func (b *Builder) Build(ctx context.Context, corpus cdpdocs.Corpus) (*Flat, error) {
	if b.Embedder == nil {
		return nil, cdpdocs.Errorf(cdpdocs.EINVALID, "embedder required")
	}
	logger := b.logger()
	dim := b.Embedder.Dimension()

	var sentences []cdpdocs.Sentence
	for _, name := range corpus.Names() {
		text := corpus[name]
		if strings.TrimSpace(text) == "" {
			logger.Warn("no content for source", "source", name)
			continue
		}
		for _, s := range SplitSentences(text) {
			sentences = append(sentences, cdpdocs.Sentence{Text: s, Source: name})
		}
	}

	id := uuid.NewString()
	if len(sentences) == 0 {
		logger.Warn("corpus has no sentences", "index", id)
		return NewFlat(id, dim, nil)
	}

	if err := b.embed(ctx, sentences, dim); err != nil {
		return nil, err
	}

	f, err := NewFlat(id, dim, sentences)
	if err != nil {
		return nil, err
	}
	logger.Info("built index", "index", id, "sentences", f.Len(), "dimension", dim)
	return f, nil
}

// embed fills in the Embedding of every sentence, batch by batch.
func (b *Builder) embed(ctx context.Context, sentences []cdpdocs.Sentence, dim int) error {
	size := b.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for start := 0; start < len(sentences); start += size {
		batch := sentences[start:min(start+size, len(sentences))]
		g.Go(func() error {
			texts := make([]string, len(batch))
			for i, s := range batch {
				texts[i] = s.Text
			}
			vecs, err := b.Embedder.Embed(gctx, texts)
			if err != nil {
				return fmt.Errorf("embed sentences %d-%d: %w", start, start+len(batch)-1, err)
			}
			if len(vecs) != len(batch) {
				return cdpdocs.Errorf(cdpdocs.EINTERNAL, "embedder returned %d vectors for %d sentences", len(vecs), len(batch))
			}
			for i, v := range vecs {
				if len(v) != dim {
					return cdpdocs.Errorf(cdpdocs.EINTERNAL, "embedding has dimension %d, want %d", len(v), dim)
				}
				batch[i].Embedding = v
			}
			return nil
		})
	}
	return g.Wait()
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}
