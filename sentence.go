package cdpdocs

import (
	"context"
	"time"
)

// NoResultsMessage is returned in place of results when nothing relevant was found.
const NoResultsMessage = "No relevant documentation found."

// Sentence is one retrievable unit of text.
type Sentence struct {
	Text      string    `json:"text"`
	Source    string    `json:"source"`
	Embedding []float32 `json:"embedding,omitempty"`
}

// IndexInfo describes a built index.
type IndexInfo struct {
	ID        string         `json:"id"`
	Sentences int            `json:"sentences"`
	Dimension int            `json:"dimension"`
	Sources   map[string]int `json:"sources"`
	BuiltAt   time.Time      `json:"builtAt"`
}

// Searcher answers questions from the documentation index.
type Searcher interface {
	// Search returns up to three ranked passages for the question.
	// When nothing relevant is indexed it returns a single NoResultsMessage.
	Search(ctx context.Context, question string) ([]string, error)
}

// Retriever is a Searcher whose index can be rebuilt while serving.
type Retriever interface {
	Searcher

	// Rebuild reloads the corpus and replaces the index.
	// Queries keep using the previous index until the new one is complete.
	Rebuild(ctx context.Context) (IndexInfo, error)

	// Info describes the index currently used by Search.
	Info() IndexInfo
}
