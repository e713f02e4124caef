package index

import (
	"errors"
	"testing"

	apperrors "github.com/minisearch/minisearch/pkg/errors"
)

func TestAdd(t *testing.T) {
	x := New()
	if err := x.Add("doc1.html", []string{"cloud", "security", "cloud"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := x.Add("doc2.html", []string{"cloud", "network"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if got := x.DocCount(); got != 2 {
		t.Errorf("DocCount = %d, want 2", got)
	}
	if got := x.VocabularySize(); got != 3 {
		t.Errorf("VocabularySize = %d, want 3", got)
	}
	if got := x.TotalTerms(); got != 5 {
		t.Errorf("TotalTerms = %d, want 5", got)
	}
	if got := x.TermFrequency("cloud", "doc1.html"); got != 2 {
		t.Errorf("TermFrequency(cloud, doc1) = %d, want 2", got)
	}
	if got := x.TermFrequency("security", "doc2.html"); got != 0 {
		t.Errorf("TermFrequency(security, doc2) = %d, want 0", got)
	}
	if got := x.DocumentFrequency("cloud"); got != 2 {
		t.Errorf("DocumentFrequency(cloud) = %d, want 2", got)
	}
	if got := x.DocumentFrequency("network"); got != 1 {
		t.Errorf("DocumentFrequency(network) = %d, want 1", got)
	}
	if got := x.DocLength("doc1.html"); got != 3 {
		t.Errorf("DocLength(doc1) = %d, want 3", got)
	}
	if !x.HasTerm("security") {
		t.Error("HasTerm(security) = false, want true")
	}
	if x.HasTerm("absent") {
		t.Error("HasTerm(absent) = true, want false")
	}
}

func TestAddDuplicateDocument(t *testing.T) {
	x := New()
	if err := x.Add("doc1.html", []string{"cloud"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	err := x.Add("doc1.html", []string{"network"})
	if !errors.Is(err, apperrors.ErrDuplicateDocument) {
		t.Errorf("second Add error = %v, want ErrDuplicateDocument", err)
	}
	if got := x.DocCount(); got != 1 {
		t.Errorf("DocCount after rejected Add = %d, want 1", got)
	}
	if x.HasTerm("network") {
		t.Error("rejected document's terms must not enter the index")
	}
}

func TestAddEmptyDocumentCountsTowardCorpus(t *testing.T) {
	x := New()
	if err := x.Add("empty.html", nil); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := x.Add("full.html", []string{"cloud"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := x.DocCount(); got != 2 {
		t.Errorf("DocCount = %d, want 2", got)
	}
	if got := x.DocLength("empty.html"); got != 0 {
		t.Errorf("DocLength(empty) = %d, want 0", got)
	}
	if got := x.VocabularySize(); got != 1 {
		t.Errorf("VocabularySize = %d, want 1", got)
	}
}

// df must always equal the posting-set size, including after documents that
// repeat a term.
func TestDocumentFrequencyMatchesPostings(t *testing.T) {
	x := New()
	docs := map[string][]string{
		"a.html": {"cloud", "cloud", "security"},
		"b.html": {"cloud", "network"},
		"c.html": {"security", "security", "security"},
	}
	for docID, terms := range docs {
		if err := x.Add(docID, terms); err != nil {
			t.Fatalf("Add(%s): %v", docID, err)
		}
	}
	for _, term := range []string{"cloud", "security", "network"} {
		if df, postings := x.DocumentFrequency(term), len(x.Postings(term)); df != postings {
			t.Errorf("term %q: df=%d but |postings|=%d", term, df, postings)
		}
	}
}

func TestTopTerms(t *testing.T) {
	x := New()
	x.Add("a.html", []string{"cloud", "security", "zebra"})
	x.Add("b.html", []string{"cloud", "security"})
	x.Add("c.html", []string{"cloud", "alpha"})

	top := x.TopTerms(3)
	if len(top) != 3 {
		t.Fatalf("TopTerms(3) returned %d entries", len(top))
	}
	if top[0].Term != "cloud" || top[0].Docs != 3 {
		t.Errorf("top[0] = %+v, want cloud/3", top[0])
	}
	if top[1].Term != "security" || top[1].Docs != 2 {
		t.Errorf("top[1] = %+v, want security/2", top[1])
	}
	// alpha and zebra both appear once; term ascending breaks the tie.
	if top[2].Term != "alpha" {
		t.Errorf("top[2].Term = %q, want alpha", top[2].Term)
	}
}

func TestStats(t *testing.T) {
	x := New()
	x.Add("a.html", []string{"cloud", "security"})
	x.Add("b.html", []string{"cloud"})

	stats := x.Stats(5)
	if stats.DocumentCount != 2 {
		t.Errorf("DocumentCount = %d, want 2", stats.DocumentCount)
	}
	if stats.VocabularySize != 2 {
		t.Errorf("VocabularySize = %d, want 2", stats.VocabularySize)
	}
	if stats.TotalTerms != 3 {
		t.Errorf("TotalTerms = %d, want 3", stats.TotalTerms)
	}
	if stats.DocumentLength["a.html"] != 2 {
		t.Errorf("DocumentLength[a.html] = %d, want 2", stats.DocumentLength["a.html"])
	}

	// The snapshot map is a copy; mutating it must not touch the index.
	stats.DocumentLength["a.html"] = 99
	if got := x.DocLength("a.html"); got != 2 {
		t.Errorf("DocLength after snapshot mutation = %d, want 2", got)
	}
}
