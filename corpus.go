package cdpdocs

import (
	"context"
	"sort"
	"time"
)

// Corpus maps a Source name to the text accumulated while crawling it.
// Sources that yielded nothing are kept with an empty string.
type Corpus map[string]string

// Names returns the source names in sorted order.
func (c Corpus) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CorpusStore persists a Corpus.
type CorpusStore interface {
	// Save replaces any previously saved corpus.
	Save(ctx context.Context, corpus Corpus) error

	// Load returns the saved corpus, or an empty Corpus if none was saved.
	Load(ctx context.Context) (Corpus, error)
}

// CorpusEntry describes one stored source without its text.
type CorpusEntry struct {
	Source      string
	Chars       int
	ContentHash string
	UpdatedAt   time.Time
}

// CorpusInspector is implemented by stores that can report what they hold.
type CorpusInspector interface {
	// Entries returns one entry per stored source, sorted by name.
	Entries(ctx context.Context) ([]CorpusEntry, error)
}
