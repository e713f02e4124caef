// Package indexer owns the index build: it tokenizes document text with the
// shared stop-word set, feeds the index tables, and keeps the per-document
// URL and outbound-link metadata supplied by the corpus loader.
package indexer

import (
	"fmt"
	"log/slog"

	"github.com/minisearch/minisearch/internal/indexer/index"
	"github.com/minisearch/minisearch/internal/indexer/tokenizer"
	"github.com/minisearch/minisearch/pkg/logger"
)

// Engine builds and owns one index instance. It is not safe for concurrent
// IndexDocument calls; the corpus is loaded in a single sequential pass and
// the engine is read-only afterwards.
type Engine struct {
	idx    *index.Index
	stop   tokenizer.Stopwords
	urls   map[string]string
	links  map[string][]string
	logger *slog.Logger
}

// NewEngine creates an Engine with the given stop-word set. A nil set falls
// back to the built-in English defaults.
func NewEngine(stop tokenizer.Stopwords) *Engine {
	if stop == nil {
		stop = tokenizer.DefaultStopwords()
	}
	return &Engine{
		idx:    index.New(),
		stop:   stop,
		urls:   make(map[string]string),
		links:  make(map[string][]string),
		logger: logger.WithComponent("indexer"),
	}
}

// IndexDocument tokenizes text and adds the document to the index, recording
// its URL and outbound links for result display. docID must be unique across
// the corpus.
func (e *Engine) IndexDocument(docID, text, url string, links []string) error {
	terms := tokenizer.Tokenize(text, e.stop)
	if err := e.idx.Add(docID, terms); err != nil {
		return fmt.Errorf("indexing %s: %w", docID, err)
	}
	if url != "" {
		e.urls[docID] = url
	}
	if len(links) > 0 {
		e.links[docID] = links
	}
	e.logger.Debug("document indexed",
		"doc_id", docID,
		"term_count", len(terms),
		"link_count", len(links),
	)
	return nil
}

// Tokenize applies the engine's stop-word set to query text. Using the same
// function for documents and queries keeps matching symmetric.
func (e *Engine) Tokenize(text string) []string {
	return tokenizer.Tokenize(text, e.stop)
}

// Index exposes the read-only index tables to the searcher.
func (e *Engine) Index() *index.Index {
	return e.idx
}

// URL returns the display URL recorded for docID, empty if unknown.
func (e *Engine) URL(docID string) string {
	return e.urls[docID]
}

// Links returns the outbound links recorded for docID.
func (e *Engine) Links(docID string) []string {
	return e.links[docID]
}

// Stats returns a diagnostic snapshot of the index.
func (e *Engine) Stats() index.Stats {
	return e.idx.Stats(10)
}
