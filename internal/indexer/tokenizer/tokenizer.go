// Package tokenizer turns raw text into the normalised terms used as index
// keys. It lower-cases input, extracts maximal runs of letters, digits, and
// underscores, and drops single-character tokens and stop-words. Document
// text and query text go through the same function with the same stop-word
// set, so a query term can only miss the index if the corpus never contained
// it.
package tokenizer

import (
	"strings"
	"unicode"
)

// Stopwords is the set of words excluded from indexing. Lookups are
// case-insensitive because Tokenize lower-cases before checking membership.
type Stopwords map[string]struct{}

// Contains reports whether w (already lower-cased) is a stop-word.
func (s Stopwords) Contains(w string) bool {
	_, ok := s[w]
	return ok
}

// Tokenize breaks text into a slice of lowercased terms with short tokens
// and stop-words removed. It is a pure function of its inputs.
func Tokenize(text string, stop Stopwords) []string {
	text = strings.ToLower(text)
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	terms := make([]string, 0, len(words)/2)
	for _, word := range words {
		if len(word) < 2 {
			continue
		}
		if stop.Contains(word) {
			continue
		}
		terms = append(terms, word)
	}
	return terms
}
