// Package fs provides file-based storage for the documentation corpus.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/cdpdocs"
)

// DefaultCorpusPath is the corpus file written when no path is configured.
const DefaultCorpusPath = "docs.json"

// Ensure CorpusFile implements the store interfaces at compile time.
var (
	_ cdpdocs.CorpusStore     = (*CorpusFile)(nil)
	_ cdpdocs.CorpusInspector = (*CorpusFile)(nil)
)

// CorpusFile implements cdpdocs.CorpusStore as a single JSON object keyed
// by source name. Saves write path.tmp and rename it over path.
type CorpusFile struct {
	path string
}

// NewCorpusFile creates a CorpusFile stored at path.
func NewCorpusFile(path string) *CorpusFile {
	if path == "" {
		path = DefaultCorpusPath
	}
	return &CorpusFile{path: path}
}

// Path returns the location of the corpus file.
func (f *CorpusFile) Path() string {
	return f.path
}

func (f *CorpusFile) tempPath() string {
	return f.path + ".tmp"
}

// Save overwrites the corpus file with corpus.
func (f *CorpusFile) Save(ctx context.Context, corpus cdpdocs.Corpus) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if corpus == nil {
		corpus = cdpdocs.Corpus{}
	}

	data, err := json.MarshalIndent(corpus, "", "  ")
	if err != nil {
		return fmt.Errorf("encode corpus: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(f.tempPath(), data, 0644); err != nil {
		return err
	}
	if err := os.Rename(f.tempPath(), f.path); err != nil {
		_ = os.Remove(f.tempPath())
		return err
	}
	return nil
}

// Load reads the corpus file. A missing file yields an empty corpus.
func (f *CorpusFile) Load(ctx context.Context) (cdpdocs.Corpus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return cdpdocs.Corpus{}, nil
	} else if err != nil {
		return nil, err
	}

	corpus := cdpdocs.Corpus{}
	if err := json.Unmarshal(data, &corpus); err != nil {
		return nil, cdpdocs.Errorf(cdpdocs.EINVALID, "corpus file %s: %v", f.path, err)
	}
	return corpus, nil
}

// Entries reports every source in the file. All entries share the file's
// modification time. A missing file has no entries.
func (f *CorpusFile) Entries(ctx context.Context) ([]cdpdocs.CorpusEntry, error) {
	corpus, err := f.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(corpus) == 0 {
		return nil, nil
	}

	info, err := os.Stat(f.path)
	if err != nil {
		return nil, err
	}

	entries := make([]cdpdocs.CorpusEntry, 0, len(corpus))
	for _, name := range corpus.Names() {
		text := corpus[name]
		entries = append(entries, cdpdocs.CorpusEntry{
			Source:      name,
			Chars:       utf8.RuneCountInString(text),
			ContentHash: fmt.Sprintf("%x", xxhash.Sum64String(text)),
			UpdatedAt:   info.ModTime().UTC(),
		})
	}
	return entries, nil
}
