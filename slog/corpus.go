package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cdpdocs"
)

// Ensure LoggingCorpusStore implements cdpdocs.CorpusStore.
var _ cdpdocs.CorpusStore = (*LoggingCorpusStore)(nil)

// LoggingCorpusStore wraps a CorpusStore with logging.
type LoggingCorpusStore struct {
	next   cdpdocs.CorpusStore
	logger *slog.Logger
}

// NewLoggingCorpusStore creates a new LoggingCorpusStore.
func NewLoggingCorpusStore(next cdpdocs.CorpusStore, logger *slog.Logger) *LoggingCorpusStore {
	return &LoggingCorpusStore{next: next, logger: logger}
}

// Save delegates to the wrapped store and logs the operation.
func (s *LoggingCorpusStore) Save(ctx context.Context, corpus cdpdocs.Corpus) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save corpus",
			"sources", len(corpus),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, corpus)
}

// Load delegates to the wrapped store and logs the operation.
func (s *LoggingCorpusStore) Load(ctx context.Context) (corpus cdpdocs.Corpus, err error) {
	defer func(begin time.Time) {
		s.logger.Info("load corpus",
			"sources", len(corpus),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx)
}
