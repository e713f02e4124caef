// Package ranker scores candidate documents with TF-IDF and orders them for
// presentation.
package ranker

import (
	"math"
	"sort"

	"github.com/minisearch/minisearch/internal/indexer/index"
)

// ScoredDoc is a candidate document with its accumulated query score.
type ScoredDoc struct {
	DocID string  `json:"doc_id"`
	Score float64 `json:"score"`
}

// Rank scores every candidate as the sum of TFIDF over the query terms and
// returns all of them ordered by score descending, doc ID ascending on ties.
// No threshold or truncation is applied here; callers that want a shorter
// list cut it after ranking.
func Rank(idx *index.Index, candidates map[string]struct{}, queryTerms []string) []ScoredDoc {
	result := make([]ScoredDoc, 0, len(candidates))
	for docID := range candidates {
		var score float64
		for _, term := range queryTerms {
			score += TFIDF(idx, term, docID)
		}
		result = append(result, ScoredDoc{DocID: docID, Score: score})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].DocID < result[j].DocID
	})
	return result
}

// TFIDF computes tf(term,doc) * idf(term). tf is the occurrence count
// normalised by document length (0 for an empty document); idf is
// ln(N/df) (0 when the term is unseen, and 0 when the term appears in every
// document).
func TFIDF(idx *index.Index, term, docID string) float64 {
	docLen := idx.DocLength(docID)
	if docLen == 0 {
		return 0
	}
	df := idx.DocumentFrequency(term)
	if df == 0 {
		return 0
	}
	tf := float64(idx.TermFrequency(term, docID)) / float64(docLen)
	idf := math.Log(float64(idx.DocCount()) / float64(df))
	return tf * idf
}
