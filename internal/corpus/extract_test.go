package corpus

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtract(t *testing.T) {
	page := `<!DOCTYPE html>
<html>
<head>
  <title>Cloud Security Basics</title>
  <style>body { color: red; }</style>
  <script>var tracking = "ignored";</script>
</head>
<body>
  <h1>Cloud Security</h1>
  <p>Encryption protects data at rest.</p>
  <a href="https://example.com/next">Next page</a>
  <a href="/relative/path">Relative</a>
  <a>No href</a>
</body>
</html>`

	text, hrefs, err := Extract([]byte(page))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	for _, want := range []string{"Cloud Security Basics", "Cloud Security", "Encryption protects data at rest.", "Next page"} {
		if !strings.Contains(text, want) {
			t.Errorf("extracted text missing %q", want)
		}
	}
	for _, skipped := range []string{"color: red", "tracking", "ignored"} {
		if strings.Contains(text, skipped) {
			t.Errorf("extracted text contains script/style content %q", skipped)
		}
	}

	wantHrefs := []string{"https://example.com/next", "/relative/path"}
	if !reflect.DeepEqual(hrefs, wantHrefs) {
		t.Errorf("hrefs = %v, want %v", hrefs, wantHrefs)
	}
}

func TestExtractNestedSkippedElements(t *testing.T) {
	page := `<div>visible<script>hidden<span>also hidden</span></script>still visible</div>`
	text, _, err := Extract([]byte(page))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !strings.Contains(text, "visible") || !strings.Contains(text, "still visible") {
		t.Errorf("text outside script lost: %q", text)
	}
	if strings.Contains(text, "hidden") {
		t.Errorf("text inside script leaked: %q", text)
	}
}

// The parser repairs malformed markup rather than failing, so even broken
// pages produce usable text.
func TestExtractMalformedHTML(t *testing.T) {
	text, _, err := Extract([]byte(`<p>unclosed paragraph <b>bold text`))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !strings.Contains(text, "unclosed paragraph") || !strings.Contains(text, "bold text") {
		t.Errorf("malformed page text = %q", text)
	}
}

func TestExtractEmptyHrefSkipped(t *testing.T) {
	_, hrefs, err := Extract([]byte(`<a href="   ">blank</a><a href="x.html">ok</a>`))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(hrefs) != 1 || hrefs[0] != "x.html" {
		t.Errorf("hrefs = %v, want [x.html]", hrefs)
	}
}
