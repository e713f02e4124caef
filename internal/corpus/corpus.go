// Package corpus loads a directory of HTML pages into an index engine. It
// handles the glue around the index build: finding the files, the
// filename→URL mapping, text and link extraction, and the exclusion of
// documents that fail to load or parse.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/minisearch/minisearch/internal/indexer"
	apperrors "github.com/minisearch/minisearch/pkg/errors"
	"github.com/minisearch/minisearch/pkg/logger"
)

// Failure records a document excluded from the corpus and why.
type Failure struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// Report summarises one corpus load.
type Report struct {
	Indexed  []string  `json:"indexed"`
	Failed   []Failure `json:"failed,omitempty"`
	URLCount int       `json:"url_count"`
}

// Load indexes every .html/.htm file under dir into the engine, in filename
// order. A document that cannot be read or parsed is logged, recorded in the
// report, and skipped; the rest of the corpus still loads. urlMapFile is
// resolved relative to dir and is optional.
func Load(dir, urlMapFile string, engine *indexer.Engine) (*Report, error) {
	log := logger.WithComponent("corpus-loader")

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrCorpusNotFound, dir)
		}
		return nil, fmt.Errorf("reading corpus directory %s: %w", dir, err)
	}

	urls := map[string]string{}
	if urlMapFile != "" {
		loaded, err := LoadURLMap(filepath.Join(dir, urlMapFile))
		if err != nil {
			log.Warn("url map unavailable, results will have no URLs", "error", err)
		} else {
			urls = loaded
			log.Info("url mappings loaded", "count", len(urls))
		}
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".html") || strings.HasSuffix(name, ".htm") {
			files = append(files, name)
		}
	}
	sort.Strings(files)

	report := &Report{URLCount: len(urls)}
	for _, name := range files {
		if err := loadOne(dir, name, urls[name], engine); err != nil {
			log.Error("document excluded from corpus", "file", name, "error", err)
			report.Failed = append(report.Failed, Failure{
				Filename: name,
				Reason:   err.Error(),
			})
			continue
		}
		report.Indexed = append(report.Indexed, name)
	}

	if len(report.Indexed) == 0 {
		return report, fmt.Errorf("%w: %s", apperrors.ErrEmptyCorpus, dir)
	}
	log.Info("corpus loaded",
		"dir", dir,
		"indexed", len(report.Indexed),
		"failed", len(report.Failed),
	)
	return report, nil
}

func loadOne(dir, name, pageURL string, engine *indexer.Engine) error {
	body, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrDocumentUnreadable, err)
	}
	text, hrefs, err := Extract(body)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrDocumentUnparseable, err)
	}
	links := ResolveLinks(pageURL, hrefs)
	return engine.IndexDocument(name, text, pageURL, links)
}
