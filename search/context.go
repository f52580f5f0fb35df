package search

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/cdpdocs"
	"github.com/fwojciec/cdpdocs/index"
)

// Ensure Context implements cdpdocs.Retriever at compile time.
var _ cdpdocs.Retriever = (*Context)(nil)

// Context is the process-wide retrieval state: the current index snapshot
// plus what is needed to rebuild it. Searches read the snapshot without
// locking; Rebuild builds a new index off to the side and swaps it in.
type Context struct {
	store   cdpdocs.CorpusStore
	builder *index.Builder
	engine  *Engine
	logger  *slog.Logger

	current atomic.Pointer[index.Flat]
	rebuild sync.Mutex
}

// NewContext creates a Context. It serves NoResultsMessage until the first
// successful Rebuild.
func NewContext(store cdpdocs.CorpusStore, builder *index.Builder, engine *Engine, logger *slog.Logger) *Context {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Context{
		store:   store,
		builder: builder,
		engine:  engine,
		logger:  logger,
	}
}

// Search ranks the current snapshot against question.
func (c *Context) Search(ctx context.Context, question string) ([]string, error) {
	return c.engine.Search(ctx, c.current.Load(), question)
}

// Rebuild loads the corpus, builds a new index and makes it current. On
// failure the previous index stays in place. Concurrent calls run one at
// a time.
func (c *Context) Rebuild(ctx context.Context) (cdpdocs.IndexInfo, error) {
	c.rebuild.Lock()
	defer c.rebuild.Unlock()

	corpus, err := c.store.Load(ctx)
	if err != nil {
		c.logger.Error("rebuild: load corpus", "err", err)
		return cdpdocs.IndexInfo{}, err
	}

	idx, err := c.builder.Build(ctx, corpus)
	if err != nil {
		c.logger.Error("rebuild: build index", "err", err)
		return cdpdocs.IndexInfo{}, err
	}

	c.Swap(idx)
	return idx.Info(), nil
}

// Swap makes idx the current snapshot. A nil idx is ignored so the
// current snapshot keeps serving.
func (c *Context) Swap(idx *index.Flat) {
	if idx == nil {
		c.logger.Warn("ignoring swap to nil index")
		return
	}
	old := c.current.Swap(idx)
	attrs := []any{"index", idx.ID(), "sentences", idx.Len()}
	if old != nil {
		attrs = append(attrs, "previous", old.ID())
	}
	c.logger.Info("index swapped", attrs...)
}

// Snapshot returns the current index, or nil before the first build.
func (c *Context) Snapshot() *index.Flat {
	return c.current.Load()
}

// Info describes the current index.
func (c *Context) Info() cdpdocs.IndexInfo {
	idx := c.current.Load()
	if idx == nil {
		return cdpdocs.IndexInfo{Sources: map[string]int{}}
	}
	return idx.Info()
}
