package index

// Stats is a read-only snapshot of the index for diagnostic display.
type Stats struct {
	DocumentCount  int            `json:"document_count"`
	VocabularySize int            `json:"vocabulary_size"`
	TotalTerms     int64          `json:"total_terms"`
	DocumentLength map[string]int `json:"document_length"`
	TopTerms       []TermDocCount `json:"top_terms"`
}

// Stats builds a snapshot of the current index state. The document-length
// map is copied so callers cannot mutate index internals.
func (x *Index) Stats(topN int) Stats {
	lengths := make(map[string]int, len(x.docLen))
	for doc, n := range x.docLen {
		lengths[doc] = n
	}
	return Stats{
		DocumentCount:  x.DocCount(),
		VocabularySize: x.VocabularySize(),
		TotalTerms:     x.totalTerms,
		DocumentLength: lengths,
		TopTerms:       x.TopTerms(topN),
	}
}
