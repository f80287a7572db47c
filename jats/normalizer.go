// Package jats normalizes JATS-family article XML (as served by Europe PMC
// fullTextXML and NCBI efetch) into the section model.
package jats

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/pmcfetch"
)

// Fallback section names used when a structural element carries no title.
const (
	untitledSection = "Untitled Section"
	untitledBody    = "Body (untitled)"
	abstractSection = "Abstract"
)

// Non-text content that never contributes paragraph text: tables, figures,
// supplementary material and reference lists are excluded, and citation
// markers are dropped from inline text.
var skipTags = map[string]struct{}{
	"xref":                   {},
	"table-wrap":             {},
	"table-wrap-group":       {},
	"fig":                    {},
	"fig-group":              {},
	"supplementary-material": {},
	"ref-list":               {},
}

// Normalize converts a raw JATS XML document into a section model.
//
// The model contains a "Title" section iff the document has a title element
// and an "Abstract" section iff it has an abstract element. Body sections
// and their nested subsections each become a top-level entry keyed by their
// own heading. Missing substructures are resolved as omission; only a
// document that cannot be interpreted as JATS at all yields an EPARSE error.
func Normalize(data []byte) (*pmcfetch.SectionModel, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, pmcfetch.Errorf(pmcfetch.EPARSE, "not well-formed XML: %v", err)
	}

	article := findArticle(doc.Root())
	if article == nil {
		return nil, pmcfetch.Errorf(pmcfetch.EPARSE, "no article element in document")
	}

	model := pmcfetch.NewSectionModel()
	addTitle(article, model)
	addAbstracts(article, model)
	addBody(article, model)
	return model, nil
}

// findArticle returns the article element: the root itself or the first
// descendant named "article".
func findArticle(root *etree.Element) *etree.Element {
	if root == nil {
		return nil
	}
	if root.Tag == "article" {
		return root
	}
	return root.FindElement("//article")
}

func addTitle(article *etree.Element, model *pmcfetch.SectionModel) {
	el := article.FindElement("./front/article-meta/title-group/article-title")
	if el == nil {
		el = article.FindElement("./front/article-meta/title-group/trans-title-group/trans-title")
	}
	if el == nil {
		return
	}
	model.Add("Title", flatten(el))
}

// addAbstracts emits abstract and trans-abstract elements. A single
// untitled abstract keys "Abstract"; additional or titled abstracts key
// their own title or a numbered fallback. Nested abstract sections become
// their own entries.
func addAbstracts(article *etree.Element, model *pmcfetch.SectionModel) {
	meta := article.FindElement("./front/article-meta")
	if meta == nil {
		return
	}

	var abstracts []*etree.Element
	abstracts = append(abstracts, meta.SelectElements("abstract")...)
	abstracts = append(abstracts, meta.SelectElements("trans-abstract")...)

	for i, abs := range abstracts {
		title := titleOf(abs)
		key := title
		if key == "" {
			if len(abstracts) == 1 {
				key = abstractSection
			} else {
				key = abstractSection + " " + strconv.Itoa(i+1)
			}
		}

		model.Append(key, levelParagraphs(abs)...)

		for _, sec := range abs.SelectElements("sec") {
			secKey := titleOf(sec)
			if secKey == "" {
				secKey = key + " subsection"
			}
			model.Append(secKey, levelParagraphs(sec)...)
		}
	}
}

// addBody walks body sections in document order. Content before the first
// section goes under "Body (untitled)"; each section and nested subsection
// becomes its own entry keyed by its heading.
func addBody(article *etree.Element, model *pmcfetch.SectionModel) {
	body := article.FindElement("./body")
	if body == nil {
		return
	}

	var preface []string
	for _, child := range body.ChildElements() {
		if child.Tag == "sec" {
			break
		}
		if child.Tag == "title" {
			continue
		}
		if _, skip := skipTags[child.Tag]; skip {
			continue
		}
		if text := flatten(child); text != "" {
			preface = append(preface, text)
		}
	}
	model.Append(untitledBody, preface...)

	for _, sec := range body.SelectElements("sec") {
		walkSection(sec, model)
	}
}

func walkSection(sec *etree.Element, model *pmcfetch.SectionModel) {
	key := titleOf(sec)
	if key == "" {
		key = untitledSection
	}
	model.Append(key, levelParagraphs(sec)...)

	for _, child := range sec.SelectElements("sec") {
		walkSection(child, model)
	}
}

// levelParagraphs collects paragraph text from the current level of a
// container, excluding headings, nested sections and non-text content.
// Each block-level child flattens to one paragraph.
func levelParagraphs(container *etree.Element) []string {
	var out []string
	for _, child := range container.ChildElements() {
		switch child.Tag {
		case "title", "label", "sec":
			continue
		}
		if _, skip := skipTags[child.Tag]; skip {
			continue
		}
		if text := flatten(child); text != "" {
			out = append(out, text)
		}
	}
	return out
}

func titleOf(el *etree.Element) string {
	title := el.SelectElement("title")
	if title == nil {
		return ""
	}
	return flatten(title)
}

// flatten concatenates the text of an element and its descendants as plain
// text with collapsed whitespace. Inline formatting elements contribute
// their text; citation markers and non-text blocks contribute nothing.
func flatten(el *etree.Element) string {
	var parts []string

	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		for _, tok := range e.Child {
			switch n := tok.(type) {
			case *etree.CharData:
				parts = append(parts, n.Data)
			case *etree.Element:
				if _, skip := skipTags[n.Tag]; skip {
					continue
				}
				walk(n)
			}
		}
	}
	walk(el)

	return strings.Join(strings.Fields(strings.Join(parts, "")), " ")
}

