package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/minisearch/minisearch/internal/indexer"
	apperrors "github.com/minisearch/minisearch/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadURLMap(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "input.txt", `doc1.html https://example.com/one

// comment
doc2.html https://example.com/two
malformed-line-without-url
`)

	urls, err := LoadURLMap(filepath.Join(dir, "input.txt"))
	if err != nil {
		t.Fatalf("LoadURLMap: %v", err)
	}
	if len(urls) != 2 {
		t.Errorf("expected 2 mappings, got %d: %v", len(urls), urls)
	}
	if urls["doc1.html"] != "https://example.com/one" {
		t.Errorf("doc1.html -> %q", urls["doc1.html"])
	}
	if urls["doc2.html"] != "https://example.com/two" {
		t.Errorf("doc2.html -> %q", urls["doc2.html"])
	}
}

func TestLoadURLMapMissingFile(t *testing.T) {
	if _, err := LoadURLMap(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing url map")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "alpha.html", `<html><body><p>Cloud security fundamentals</p>
<a href="beta.html">next</a></body></html>`)
	writeFile(t, dir, "beta.html", `<html><body><p>Network monitoring basics</p></body></html>`)
	writeFile(t, dir, "notes.txt", "not part of the corpus")
	writeFile(t, dir, "input.txt", `alpha.html https://example.com/alpha
beta.html https://example.com/beta
`)

	engine := indexer.NewEngine(nil)
	report, err := Load(dir, "input.txt", engine)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(report.Indexed) != 2 {
		t.Fatalf("Indexed = %v, want 2 documents", report.Indexed)
	}
	// Filename order, not directory order.
	if report.Indexed[0] != "alpha.html" || report.Indexed[1] != "beta.html" {
		t.Errorf("Indexed order = %v", report.Indexed)
	}
	if len(report.Failed) != 0 {
		t.Errorf("Failed = %v, want none", report.Failed)
	}
	if report.URLCount != 2 {
		t.Errorf("URLCount = %d, want 2", report.URLCount)
	}

	if got := engine.Index().DocCount(); got != 2 {
		t.Errorf("DocCount = %d, want 2", got)
	}
	if !engine.Index().HasTerm("fundamentals") {
		t.Error("expected alpha.html terms in the index")
	}
	if engine.Index().HasTerm("corpus") {
		t.Error("non-HTML file leaked into the index")
	}
	if got := engine.URL("alpha.html"); got != "https://example.com/alpha" {
		t.Errorf("URL(alpha.html) = %q", got)
	}
	if links := engine.Links("alpha.html"); len(links) != 1 || links[0] != "https://example.com/beta.html" {
		t.Errorf("Links(alpha.html) = %v", links)
	}
}

func TestLoadMissingDirectory(t *testing.T) {
	engine := indexer.NewEngine(nil)
	_, err := Load(filepath.Join(t.TempDir(), "absent"), "", engine)
	if !errors.Is(err, apperrors.ErrCorpusNotFound) {
		t.Errorf("err = %v, want ErrCorpusNotFound", err)
	}
}

func TestLoadEmptyCorpus(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "readme.txt", "no html here")

	engine := indexer.NewEngine(nil)
	_, err := Load(dir, "", engine)
	if !errors.Is(err, apperrors.ErrEmptyCorpus) {
		t.Errorf("err = %v, want ErrEmptyCorpus", err)
	}
}

// A missing URL map degrades to URL-less results instead of failing the load.
func TestLoadWithoutURLMap(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "page.html", `<html><body>standalone page content</body></html>`)

	engine := indexer.NewEngine(nil)
	report, err := Load(dir, "input.txt", engine)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(report.Indexed) != 1 {
		t.Fatalf("Indexed = %v", report.Indexed)
	}
	if report.URLCount != 0 {
		t.Errorf("URLCount = %d, want 0", report.URLCount)
	}
	if got := engine.URL("page.html"); got != "" {
		t.Errorf("URL = %q, want empty", got)
	}
}

func TestLoadUnreadableDocumentSkipped(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}
	dir := t.TempDir()
	writeFile(t, dir, "good.html", `<html><body>readable content</body></html>`)
	writeFile(t, dir, "bad.html", `<html><body>unreadable</body></html>`)
	if err := os.Chmod(filepath.Join(dir, "bad.html"), 0000); err != nil {
		t.Fatal(err)
	}

	engine := indexer.NewEngine(nil)
	report, err := Load(dir, "", engine)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(report.Indexed) != 1 || report.Indexed[0] != "good.html" {
		t.Errorf("Indexed = %v, want [good.html]", report.Indexed)
	}
	if len(report.Failed) != 1 || report.Failed[0].Filename != "bad.html" {
		t.Errorf("Failed = %v, want bad.html", report.Failed)
	}
}
