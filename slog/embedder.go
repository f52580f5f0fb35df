package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cdpdocs"
)

// Ensure LoggingEmbedder implements cdpdocs.Embedder.
var _ cdpdocs.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder with debug logging per batch.
type LoggingEmbedder struct {
	next   cdpdocs.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next cdpdocs.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

// Embed delegates to the wrapped embedder and logs the batch.
func (e *LoggingEmbedder) Embed(ctx context.Context, texts []string) (vecs [][]float32, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("embed",
			"texts", len(texts),
			"vectors", len(vecs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Embed(ctx, texts)
}

// Dimension delegates to the wrapped embedder.
func (e *LoggingEmbedder) Dimension() int {
	return e.next.Dimension()
}

// Close delegates to the wrapped embedder.
func (e *LoggingEmbedder) Close() error {
	return e.next.Close()
}
