package http

import (
	"context"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/pmcfetch"
)

// DefaultCitationBaseURL is the NCBI efetch endpoint used for PubMed
// citation records.
const DefaultCitationBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"

// Ensure CitationClient implements pmcfetch.CitationService at compile time.
var _ pmcfetch.CitationService = (*CitationClient)(nil)

// CitationClient builds APA citations from NCBI PubMed records.
type CitationClient struct {
	c *client
}

// NewCitationClient creates a new CitationClient.
func NewCitationClient(opts ...Option) *CitationClient {
	return &CitationClient{c: newClient(DefaultCitationBaseURL, opts...)}
}

// Cite fetches the PubMed record for a PMID and formats APA citations.
// Returns ENOTFOUND if the PMID has no record.
func (c *CitationClient) Cite(ctx context.Context, pmid string) (*pmcfetch.Citation, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {pmid},
		"retmode": {"xml"},
	}

	body, err := c.c.get(ctx, c.c.baseURL, params)
	if err != nil {
		return nil, err
	}

	data, err := parseCitation(body)
	if err != nil {
		return nil, err
	}

	cit := data.Citation()
	return &cit, nil
}

// parseCitation extracts citation fields from a PubMed efetch XML response.
func parseCitation(body []byte) (*pmcfetch.CitationData, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, pmcfetch.Errorf(pmcfetch.EPARSE, "not well-formed PubMed XML: %v", err)
	}

	article := doc.FindElement("//PubmedArticle")
	if article == nil {
		return nil, pmcfetch.Errorf(pmcfetch.ENOTFOUND, "no PubMed record in response")
	}

	data := &pmcfetch.CitationData{
		Title:   elementText(article, ".//ArticleTitle"),
		Journal: elementText(article, ".//Journal/Title"),
		Year:    elementText(article, ".//PubDate/Year"),
		Volume:  elementText(article, ".//JournalIssue/Volume"),
		Issue:   elementText(article, ".//JournalIssue/Issue"),
		Pages:   elementText(article, ".//Pagination/MedlinePgn"),
		DOI:     elementText(article, ".//ArticleId[@IdType='doi']"),
	}

	for _, author := range article.FindElements(".//AuthorList/Author") {
		data.Authors = append(data.Authors, pmcfetch.CitationAuthor{
			LastName: elementText(author, "./LastName"),
			Initials: elementText(author, "./Initials"),
		})
	}

	return data, nil
}

// elementText returns the flattened text of the first element matching the
// path, with whitespace collapsed. Returns "" if no element matches.
func elementText(el *etree.Element, path string) string {
	found := el.FindElement(path)
	if found == nil {
		return ""
	}

	var parts []string
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		for _, tok := range e.Child {
			switch n := tok.(type) {
			case *etree.CharData:
				parts = append(parts, n.Data)
			case *etree.Element:
				walk(n)
			}
		}
	}
	walk(found)

	return strings.Join(strings.Fields(strings.Join(parts, "")), " ")
}
