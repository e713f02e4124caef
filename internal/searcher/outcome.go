package searcher

// OutcomeKind tags the variant of a search outcome. Degenerate queries are
// data, not errors: every raw query maps to exactly one kind.
type OutcomeKind string

const (
	// OutcomeEmptyQuery: the raw query was empty or whitespace-only.
	OutcomeEmptyQuery OutcomeKind = "empty_query"
	// OutcomeStopwordsOnly: tokenization left no terms (all stop-words or
	// single characters).
	OutcomeStopwordsOnly OutcomeKind = "stopwords_only"
	// OutcomeNoKnownTerms: every filtered term is absent from the index.
	OutcomeNoKnownTerms OutcomeKind = "no_known_terms"
	// OutcomeNoMatches: known terms exist but no document contains all of
	// them.
	OutcomeNoMatches OutcomeKind = "no_matches"
	// OutcomeRanked: at least one document contains every known term.
	OutcomeRanked OutcomeKind = "ranked"
)

// Result is one ranked document with its score and display metadata.
type Result struct {
	DocID     string  `json:"doc_id"`
	Score     float64 `json:"score"`
	URL       string  `json:"url,omitempty"`
	LinkCount int     `json:"link_count,omitempty"`
}

// Outcome is the tagged result of one search invocation.
type Outcome struct {
	Kind  OutcomeKind `json:"kind"`
	Query string      `json:"query"`
	// Terms are the known query terms the search ran with, in query order.
	Terms []string `json:"terms,omitempty"`
	// UnknownTerms lists filtered query terms absent from the index.
	UnknownTerms []string `json:"unknown_terms,omitempty"`
	// TermMatches maps each known term to the number of documents containing
	// it, so a no-match response can show which terms matched individually.
	TermMatches map[string]int `json:"term_matches,omitempty"`
	// Results is the ranked candidate list, present only for OutcomeRanked.
	Results []Result `json:"results,omitempty"`
}
