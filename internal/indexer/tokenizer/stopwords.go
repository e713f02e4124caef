package tokenizer

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DefaultStopwords returns the built-in English stop-word set.
func DefaultStopwords() Stopwords {
	words := []string{
		"a", "an", "the", "and", "or", "but", "is", "are", "was", "were",
		"in", "on", "at", "to", "for", "with", "by", "about", "like",
		"from", "of", "as", "this", "that", "these", "those", "it", "its",
		"be", "been", "being", "have", "has", "had", "do", "does", "did",
		"will", "would", "should", "could", "may", "might", "must", "can",
		"what", "when", "where", "who", "which", "their", "they", "if",
		"each", "not", "no", "so",
	}
	s := make(Stopwords, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// LoadStopwords reads a one-word-per-line stop-word file. Words are
// lower-cased on load; blank lines and lines starting with "//" are skipped.
func LoadStopwords(path string) (Stopwords, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening stopword file %s: %w", path, err)
	}
	defer f.Close()

	s := make(Stopwords)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "//") {
			continue
		}
		s[strings.ToLower(word)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading stopword file %s: %w", path, err)
	}
	return s, nil
}
