package pmcfetch

import (
	"context"
	"time"
)

// TextSource identifies where (and in which format) full text is fetched.
// The zero value means no full text is fetched; the record's text field
// stays null without error.
type TextSource int

// Supported full-text sources.
const (
	TextSourceNone TextSource = iota // no full text
	TextSourceEPMC                   // Europe PMC fullTextXML (JATS)
	TextSourceNCBI                   // NCBI efetch db=pmc (JATS)
	TextSourceBioC                   // NCBI BioC passage JSON
)

// String returns the CLI name of the source.
func (s TextSource) String() string {
	switch s {
	case TextSourceEPMC:
		return "epmc"
	case TextSourceNCBI:
		return "ncbi"
	case TextSourceBioC:
		return "bioc"
	default:
		return "none"
	}
}

// ParseTextSource parses a CLI source name.
// Returns EINVALID for unrecognized names.
func ParseTextSource(s string) (TextSource, error) {
	switch s {
	case "", "none":
		return TextSourceNone, nil
	case "epmc":
		return TextSourceEPMC, nil
	case "ncbi":
		return TextSourceNCBI, nil
	case "bioc":
		return TextSourceBioC, nil
	default:
		return TextSourceNone, Errorf(EINVALID, "unknown text source %q", s)
	}
}

// Citation holds APA-style citation strings for an article.
type Citation struct {
	APA      string `json:"apa,omitempty"`
	APAShort string `json:"apa_short,omitempty"`
}

// Metadata is the raw per-article metadata supplied by the search collaborator.
type Metadata struct {
	ID       string // Europe PMC record ID
	PMID     string
	PMCID    string
	Title    string
	Authors  string
	Journal  string
	Year     string
	DOI      string
	License  string
	Abstract string
}

// FileID returns the stable identifier used for the output filename and
// cross-page deduplication: PMCID, then PMID, then the source record ID.
// Returns "" if the record carries no identifier at all.
func (m Metadata) FileID() string {
	switch {
	case m.PMCID != "":
		return m.PMCID
	case m.PMID != "":
		return m.PMID
	default:
		return m.ID
	}
}

// Article is the assembled per-article record. It is immutable after
// assembly and serializes to one JSON object per article.
type Article struct {
	ID          string        `json:"id"`
	PMID        string        `json:"pmid,omitempty"`
	PMCID       string        `json:"pmcid,omitempty"`
	URL         string        `json:"url,omitempty"`
	Title       string        `json:"title"`
	Authors     string        `json:"authors"`
	Journal     string        `json:"journal"`
	Year        string        `json:"year"`
	DOI         string        `json:"doi,omitempty"`
	License     string        `json:"license"`
	Citation    Citation      `json:"citation"`
	Abstract    string        `json:"abstract"`
	Text        *SectionModel `json:"text"`
	ContentHash string        `json:"contentHash,omitempty"`
	FetchedAt   time.Time     `json:"fetchedAt"`
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.ID == "" && a.PMID == "" && a.PMCID == "" {
		return Errorf(EINVALID, "article identifier required")
	}
	return nil
}

// FileID returns the stable identifier used for the output filename.
func (a *Article) FileID() string {
	switch {
	case a.PMCID != "":
		return a.PMCID
	case a.PMID != "":
		return a.PMID
	default:
		return a.ID
	}
}

// SearchService streams article metadata for a query.
type SearchService interface {
	// Count returns the total number of hits for the query.
	Count(ctx context.Context, query string) (int, error)

	// Search calls fn for each metadata record in result order across all
	// result pages. Iteration stops early when fn returns false.
	Search(ctx context.Context, query string, fn func(Metadata) bool) error
}

// TextService retrieves and normalizes the full text of an article.
type TextService interface {
	// GetText returns the normalized section model for a PMCID.
	// Returns ENOTFOUND if no full text is available and EPARSE if the
	// payload cannot be interpreted as its declared format.
	GetText(ctx context.Context, pmcid string) (*SectionModel, error)
}

// CitationService builds citation strings for an article.
type CitationService interface {
	// Cite returns APA citations for a PMID.
	// Returns ENOTFOUND if the PMID has no metadata record.
	Cite(ctx context.Context, pmid string) (*Citation, error)
}

// ArticleWriter persists assembled articles.
type ArticleWriter interface {
	WriteArticle(ctx context.Context, article *Article) error
}

// Catalog indexes fetch runs and their articles for offline queries.
type Catalog interface {
	// BeginRun records a new fetch run and returns its ID.
	BeginRun(ctx context.Context, query string, source TextSource) (string, error)

	// IndexArticle records one article under a run.
	IndexArticle(ctx context.Context, runID string, article *Article) error

	// Stats returns aggregate statistics across all indexed articles.
	Stats(ctx context.Context) (*Stats, error)
}
