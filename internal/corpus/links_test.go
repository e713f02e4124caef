package corpus

import (
	"reflect"
	"testing"
)

func TestResolveLink(t *testing.T) {
	base := "https://example.com/docs/page.html"

	tests := []struct {
		name string
		href string
		want string
	}{
		{"absolute", "https://other.org/x", "https://other.org/x"},
		{"relative path", "other.html", "https://example.com/docs/other.html"},
		{"root relative", "/top.html", "https://example.com/top.html"},
		{"parent relative", "../up.html", "https://example.com/up.html"},
		{"fragment stripped", "other.html#section", "https://example.com/docs/other.html"},
		{"fragment only", "#top", ""},
		{"javascript scheme", "javascript:void(0)", ""},
		{"data scheme", "data:text/plain,hi", ""},
		{"empty", "", ""},
		{"whitespace", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveLink(base, tt.href); got != tt.want {
				t.Errorf("ResolveLink(%q) = %q, want %q", tt.href, got, tt.want)
			}
		})
	}
}

func TestResolveLinkNoBase(t *testing.T) {
	if got := ResolveLink("", "page.html"); got != "page.html" {
		t.Errorf("ResolveLink without base = %q, want page.html", got)
	}
}

func TestResolveLinks(t *testing.T) {
	base := "https://example.com/"
	hrefs := []string{
		"a.html",
		"b.html",
		"a.html",      // duplicate
		"a.html#frag", // resolves to the same target
		"#top",
		"javascript:alert(1)",
	}
	got := ResolveLinks(base, hrefs)
	want := []string{
		"https://example.com/a.html",
		"https://example.com/b.html",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResolveLinks = %v, want %v", got, want)
	}
}
