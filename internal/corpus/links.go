package corpus

import (
	"net/url"
	"strings"
)

// ResolveLink resolves an href against the page's base URL and normalises
// it for storage. Fragment-only, javascript:, and data: links resolve to "".
func ResolveLink(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	lower := strings.ToLower(href)
	if strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "data:") {
		return ""
	}
	if base == "" {
		return href
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}
	refURL, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := baseURL.ResolveReference(refURL)
	resolved.Fragment = ""
	return resolved.String()
}

// ResolveLinks resolves and deduplicates a page's hrefs, preserving first-seen
// order.
func ResolveLinks(base string, hrefs []string) []string {
	seen := make(map[string]struct{}, len(hrefs))
	links := make([]string, 0, len(hrefs))
	for _, href := range hrefs {
		resolved := ResolveLink(base, href)
		if resolved == "" {
			continue
		}
		if _, dup := seen[resolved]; dup {
			continue
		}
		seen[resolved] = struct{}{}
		links = append(links, resolved)
	}
	return links
}
