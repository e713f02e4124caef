package corpus

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Extract parses an HTML document and returns its visible text and the raw
// href values of its anchor elements. Text under <script> and <style> is
// skipped.
func Extract(body []byte) (text string, hrefs []string, err error) {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return "", nil, fmt.Errorf("parsing html: %w", err)
	}

	var sb strings.Builder
	var skipDepth int

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if isSkippedElement(n) {
			skipDepth++
		}
		if skipDepth == 0 {
			if n.Type == html.TextNode {
				sb.WriteString(n.Data)
				sb.WriteByte(' ')
			}
			if n.Type == html.ElementNode && strings.EqualFold(n.Data, "a") {
				for _, attr := range n.Attr {
					if strings.EqualFold(attr.Key, "href") {
						if val := strings.TrimSpace(attr.Val); val != "" {
							hrefs = append(hrefs, val)
						}
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if isSkippedElement(n) {
			skipDepth--
		}
	}
	walk(root)
	return sb.String(), hrefs, nil
}

func isSkippedElement(n *html.Node) bool {
	return n.Type == html.ElementNode &&
		(strings.EqualFold(n.Data, "script") || strings.EqualFold(n.Data, "style"))
}
