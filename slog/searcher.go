package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cdpdocs"
)

// Ensure LoggingRetriever implements cdpdocs.Retriever.
var _ cdpdocs.Retriever = (*LoggingRetriever)(nil)

// LoggingRetriever wraps a Retriever with logging of searches and rebuilds.
type LoggingRetriever struct {
	next   cdpdocs.Retriever
	logger *slog.Logger
}

// NewLoggingRetriever creates a new LoggingRetriever.
func NewLoggingRetriever(next cdpdocs.Retriever, logger *slog.Logger) *LoggingRetriever {
	return &LoggingRetriever{next: next, logger: logger}
}

// Search delegates to the wrapped retriever and logs the question.
func (r *LoggingRetriever) Search(ctx context.Context, question string) (results []string, err error) {
	defer func(begin time.Time) {
		r.logger.Info("search",
			"question", question,
			"results", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Search(ctx, question)
}

// Rebuild delegates to the wrapped retriever and logs the new index.
func (r *LoggingRetriever) Rebuild(ctx context.Context) (info cdpdocs.IndexInfo, err error) {
	defer func(begin time.Time) {
		r.logger.Info("rebuild",
			"index", info.ID,
			"sentences", info.Sentences,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Rebuild(ctx)
}

// Info delegates to the wrapped retriever.
func (r *LoggingRetriever) Info() cdpdocs.IndexInfo {
	return r.next.Info()
}
