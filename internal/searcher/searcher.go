// Package searcher resolves raw queries against a built index. Boundary
// conditions are classified by an ordered guard chain before any candidate
// work happens, so every degenerate input maps to a distinct outcome instead
// of an error.
package searcher

import (
	"log/slog"
	"strings"

	"github.com/minisearch/minisearch/internal/indexer"
	"github.com/minisearch/minisearch/internal/searcher/ranker"
	"github.com/minisearch/minisearch/pkg/logger"
)

// Searcher answers bag-of-words queries with AND semantics over one engine's
// index. It holds no mutable state and is safe for concurrent use once the
// corpus is loaded.
type Searcher struct {
	engine *indexer.Engine
	logger *slog.Logger
}

// New creates a Searcher over the given engine.
func New(engine *indexer.Engine) *Searcher {
	return &Searcher{
		engine: engine,
		logger: logger.WithComponent("searcher"),
	}
}

// Search classifies the raw query and, when it survives the guard chain,
// intersects the per-term posting sets and ranks the survivors.
func (s *Searcher) Search(rawQuery string) *Outcome {
	if strings.TrimSpace(rawQuery) == "" {
		return &Outcome{Kind: OutcomeEmptyQuery, Query: rawQuery}
	}

	terms := s.engine.Tokenize(rawQuery)
	if len(terms) == 0 {
		return &Outcome{Kind: OutcomeStopwordsOnly, Query: rawQuery}
	}

	idx := s.engine.Index()
	known := make([]string, 0, len(terms))
	var unknown []string
	seenUnknown := make(map[string]struct{})
	for _, term := range terms {
		if idx.HasTerm(term) {
			known = append(known, term)
			continue
		}
		if _, dup := seenUnknown[term]; !dup {
			seenUnknown[term] = struct{}{}
			unknown = append(unknown, term)
		}
	}
	if len(known) == 0 {
		return &Outcome{
			Kind:         OutcomeNoKnownTerms,
			Query:        rawQuery,
			UnknownTerms: unknown,
		}
	}

	termMatches := make(map[string]int, len(known))
	for _, term := range known {
		termMatches[term] = idx.DocumentFrequency(term)
	}

	candidates := s.intersect(known)
	if len(candidates) == 0 {
		s.logger.Debug("no documents match all terms",
			"query", rawQuery,
			"terms", known,
		)
		return &Outcome{
			Kind:         OutcomeNoMatches,
			Query:        rawQuery,
			Terms:        known,
			UnknownTerms: unknown,
			TermMatches:  termMatches,
		}
	}

	ranked := ranker.Rank(idx, candidates, known)
	results := make([]Result, 0, len(ranked))
	for _, doc := range ranked {
		results = append(results, Result{
			DocID:     doc.DocID,
			Score:     doc.Score,
			URL:       s.engine.URL(doc.DocID),
			LinkCount: len(s.engine.Links(doc.DocID)),
		})
	}
	return &Outcome{
		Kind:         OutcomeRanked,
		Query:        rawQuery,
		Terms:        known,
		UnknownTerms: unknown,
		TermMatches:  termMatches,
		Results:      results,
	}
}

// intersect computes the AND candidate set across the known terms' posting
// sets, starting from the rarest term to keep the working set small.
func (s *Searcher) intersect(terms []string) map[string]struct{} {
	idx := s.engine.Index()

	rarest := terms[0]
	for _, term := range terms[1:] {
		if idx.DocumentFrequency(term) < idx.DocumentFrequency(rarest) {
			rarest = term
		}
	}

	candidates := make(map[string]struct{}, idx.DocumentFrequency(rarest))
	for docID := range idx.Postings(rarest) {
		candidates[docID] = struct{}{}
	}
	for _, term := range terms {
		if term == rarest {
			continue
		}
		postings := idx.Postings(term)
		for docID := range candidates {
			if _, ok := postings[docID]; !ok {
				delete(candidates, docID)
			}
		}
	}
	return candidates
}
