// Package search ranks indexed documentation sentences against questions.
package search

import (
	"context"
	"strings"

	"github.com/fwojciec/cdpdocs"
	"github.com/fwojciec/cdpdocs/index"
)

// Ranking defaults.
const (
	DefaultLimit     = 3
	DefaultOverfetch = 3
	MinWords         = 5
	ResultMarker     = "📌 "
)

// BoostKeywords move instructional sentences to the front of the results.
var BoostKeywords = []string{"set up", "configure", "install", "steps", "connect", "source"}

// Engine answers questions from a single index.
type Engine struct {
	Embedder cdpdocs.Embedder

	// Limit is the maximum number of results. Defaults to DefaultLimit.
	Limit int
	// Overfetch multiplies Limit to size the candidate pool before filtering.
	Overfetch int
}

// Search embeds question, ranks the nearest sentences in idx and returns at
// most Limit marked results, or NoResultsMessage when none qualify.
func (e *Engine) Search(ctx context.Context, idx *index.Flat, question string) ([]string, error) {
	if idx == nil || idx.Len() == 0 {
		return []string{cdpdocs.NoResultsMessage}, nil
	}

	vecs, err := e.Embedder.Embed(ctx, []string{question})
	if err != nil {
		return nil, err
	}
	if len(vecs) != 1 {
		return nil, cdpdocs.Errorf(cdpdocs.EINTERNAL, "embedder returned %d vectors for 1 question", len(vecs))
	}

	limit := e.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	overfetch := e.Overfetch
	if overfetch <= 0 {
		overfetch = DefaultOverfetch
	}

	var candidates []string
	for _, hit := range idx.Search(vecs[0], limit*overfetch) {
		candidates = append(candidates, idx.Sentence(hit.Position))
	}

	ranked := Rank(candidates)
	if len(ranked) == 0 {
		return []string{cdpdocs.NoResultsMessage}, nil
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	results := make([]string, len(ranked))
	for i, s := range ranked {
		results[i] = ResultMarker + s
	}
	return results, nil
}

// Rank filters candidates, given in proximity order, down to sentences of at
// least MinWords words, and moves boosted sentences to the front. Each
// boosted sentence is inserted at position 0, so boosted sentences end up
// in reverse proximity order ahead of the rest.
func Rank(candidates []string) []string {
	var ranked []string
	for _, s := range candidates {
		if len(strings.Fields(s)) < MinWords {
			continue
		}
		if Boosted(s) {
			ranked = append([]string{s}, ranked...)
		} else {
			ranked = append(ranked, s)
		}
	}
	return ranked
}

// Boosted reports whether s contains a boost keyword, ignoring case.
func Boosted(s string) bool {
	lower := strings.ToLower(s)
	for _, kw := range BoostKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
