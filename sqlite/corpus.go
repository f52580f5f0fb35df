package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/cdpdocs"
)

// Ensure CorpusStore implements the store interfaces at compile time.
var (
	_ cdpdocs.CorpusStore     = (*CorpusStore)(nil)
	_ cdpdocs.CorpusInspector = (*CorpusStore)(nil)
)

// CorpusStore implements cdpdocs.CorpusStore using SQLite.
// Each source is one row of the corpus table.
type CorpusStore struct {
	db *DB

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewCorpusStore creates a new CorpusStore.
func NewCorpusStore(db *DB) *CorpusStore {
	return &CorpusStore{db: db, Now: time.Now}
}

// Save replaces all rows with corpus in a single transaction.
func (s *CorpusStore) Save(ctx context.Context, corpus cdpdocs.Corpus) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM corpus`); err != nil {
		return fmt.Errorf("failed to clear corpus: %w", err)
	}

	now := s.Now().UTC().Format(time.RFC3339)
	for _, name := range corpus.Names() {
		text := corpus[name]
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO corpus (source, text, content_hash, updated_at)
			VALUES (?, ?, ?, ?)
		`, name, text, contentHash(text), now); err != nil {
			return fmt.Errorf("failed to insert source %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit corpus: %w", err)
	}
	return nil
}

// Load returns every stored source. An empty table yields an empty corpus.
func (s *CorpusStore) Load(ctx context.Context) (cdpdocs.Corpus, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT source, text FROM corpus ORDER BY source`)
	if err != nil {
		return nil, fmt.Errorf("failed to query corpus: %w", err)
	}
	defer rows.Close()

	corpus := cdpdocs.Corpus{}
	for rows.Next() {
		var name, text string
		if err := rows.Scan(&name, &text); err != nil {
			return nil, fmt.Errorf("failed to scan corpus row: %w", err)
		}
		corpus[name] = text
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate corpus: %w", err)
	}
	return corpus, nil
}

// Entries returns per-source metadata without loading text.
func (s *CorpusStore) Entries(ctx context.Context) ([]cdpdocs.CorpusEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source, length(text), content_hash, updated_at
		FROM corpus
		ORDER BY source
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query corpus: %w", err)
	}
	defer rows.Close()

	var entries []cdpdocs.CorpusEntry
	for rows.Next() {
		var e cdpdocs.CorpusEntry
		var updatedAt string
		if err := rows.Scan(&e.Source, &e.Chars, &e.ContentHash, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan corpus row: %w", err)
		}
		if e.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate corpus: %w", err)
	}
	return entries, nil
}
