// Package goquery provides HTML cleanup for metadata strings. Europe PMC
// search results embed inline HTML in title and abstract fields (<h4>
// labels of structured abstracts, <i>, <sub> and similar), which must be
// flattened to plain text before assembly.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Block-level tags that separate words when flattened. Inline tags (<i>,
// <b>, <sub>, <sup>) must not introduce separators: "H<sub>2</sub>O"
// flattens to "H2O".
var blockTags = map[string]struct{}{
	"p": {}, "div": {}, "br": {}, "li": {}, "ul": {}, "ol": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"table": {}, "tr": {}, "td": {},
}

// StripMarkup flattens inline HTML markup in a string to plain text with
// collapsed whitespace. Strings without markup pass through unchanged apart
// from whitespace collapsing.
func StripMarkup(s string) string {
	if !strings.ContainsRune(s, '<') {
		return collapse(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return collapse(s)
	}

	var b strings.Builder
	for _, n := range doc.Selection.Nodes {
		flatten(&b, n)
	}
	return collapse(b.String())
}

func flatten(b *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}

	block := false
	if n.Type == html.ElementNode {
		_, block = blockTags[n.Data]
	}
	if block {
		b.WriteString(" ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		flatten(b, c)
	}
	if block {
		b.WriteString(" ")
	}
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
