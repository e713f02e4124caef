// Package index holds the in-memory index structures built during corpus
// load: the inverted index, the term- and document-frequency tables, and the
// document-length table. The tables are populated in a single pass and are
// read-only afterwards, so concurrent searches need no locking.
package index

import (
	"sort"

	apperrors "github.com/minisearch/minisearch/pkg/errors"
)

// Index is the term→document mapping plus the frequency tables needed for
// TF-IDF ranking.
type Index struct {
	inverted   map[string]map[string]struct{} // term -> set of doc IDs
	tf         map[string]map[string]int      // term -> doc ID -> occurrence count
	df         map[string]int                 // term -> distinct containing docs
	docLen     map[string]int                 // doc ID -> eligible term count
	docs       []string                       // doc IDs in insertion order
	totalTerms int64
}

// New creates an empty Index.
func New() *Index {
	return &Index{
		inverted: make(map[string]map[string]struct{}),
		tf:       make(map[string]map[string]int),
		df:       make(map[string]int),
		docLen:   make(map[string]int),
	}
}

// Add indexes one document's filtered term sequence. A document with no
// eligible terms still gets a length of 0 and counts toward the corpus total.
// Adding the same doc ID twice corrupts the frequency tables, so it is
// rejected with ErrDuplicateDocument instead.
func (x *Index) Add(docID string, terms []string) error {
	if _, dup := x.docLen[docID]; dup {
		return apperrors.ErrDuplicateDocument
	}

	counts := make(map[string]int, len(terms))
	for _, t := range terms {
		counts[t]++
	}
	for term, count := range counts {
		docs, ok := x.inverted[term]
		if !ok {
			docs = make(map[string]struct{})
			x.inverted[term] = docs
			x.tf[term] = make(map[string]int)
		}
		docs[docID] = struct{}{}
		x.tf[term][docID] = count
		x.df[term] = len(docs)
	}

	x.docLen[docID] = len(terms)
	x.docs = append(x.docs, docID)
	x.totalTerms += int64(len(terms))
	return nil
}

// HasTerm reports whether term appears in at least one document.
func (x *Index) HasTerm(term string) bool {
	_, ok := x.inverted[term]
	return ok
}

// Postings returns the set of doc IDs containing term. The returned map is
// owned by the index and must not be mutated.
func (x *Index) Postings(term string) map[string]struct{} {
	return x.inverted[term]
}

// TermFrequency returns the raw occurrence count of term in doc, 0 if absent.
func (x *Index) TermFrequency(term, docID string) int {
	return x.tf[term][docID]
}

// DocumentFrequency returns the number of distinct documents containing term.
func (x *Index) DocumentFrequency(term string) int {
	return x.df[term]
}

// DocLength returns the count of index-eligible terms in doc.
func (x *Index) DocLength(docID string) int {
	return x.docLen[docID]
}

// DocCount returns the total number of indexed documents, including ones
// whose filtered token stream was empty.
func (x *Index) DocCount() int {
	return len(x.docs)
}

// VocabularySize returns the number of distinct terms in the index.
func (x *Index) VocabularySize() int {
	return len(x.inverted)
}

// TotalTerms returns the corpus-wide count of index-eligible terms.
func (x *Index) TotalTerms() int64 {
	return x.totalTerms
}

// Documents returns the doc IDs in insertion order. The returned slice is
// owned by the index and must not be mutated.
func (x *Index) Documents() []string {
	return x.docs
}

// TermDocCount holds a term and the number of documents containing it.
type TermDocCount struct {
	Term string `json:"term"`
	Docs int    `json:"docs"`
}

// TopTerms returns the n terms with the highest document frequency, ties
// broken by term ascending.
func (x *Index) TopTerms(n int) []TermDocCount {
	entries := make([]TermDocCount, 0, len(x.df))
	for term, count := range x.df {
		entries = append(entries, TermDocCount{Term: term, Docs: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Docs != entries[j].Docs {
			return entries[i].Docs > entries[j].Docs
		}
		return entries[i].Term < entries[j].Term
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
