package fetch

import (
	"encoding/hex"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pmcfetch"
	"github.com/fwojciec/pmcfetch/goquery"
)

// Assemble builds the final article record from raw metadata, an optional
// citation and an optional section model. Title and abstract strings are
// cleaned of inline markup. The record is complete after assembly and is
// not mutated again.
func Assemble(meta pmcfetch.Metadata, citation *pmcfetch.Citation, text *pmcfetch.SectionModel) *pmcfetch.Article {
	article := &pmcfetch.Article{
		ID:        meta.ID,
		PMID:      meta.PMID,
		PMCID:     meta.PMCID,
		Title:     goquery.StripMarkup(meta.Title),
		Authors:   meta.Authors,
		Journal:   meta.Journal,
		Year:      meta.Year,
		DOI:       meta.DOI,
		License:   meta.License,
		Abstract:  goquery.StripMarkup(meta.Abstract),
		Text:      text,
		FetchedAt: time.Now().UTC(),
	}

	if meta.PMID != "" {
		article.URL = "https://pubmed.ncbi.nlm.nih.gov/" + meta.PMID + "/"
	}
	if citation != nil {
		article.Citation = *citation
	}
	article.ContentHash = contentHash(article)

	return article
}

// contentHash computes an xxHash over the record's textual content,
// allowing identical records from repeated runs to be detected.
func contentHash(a *pmcfetch.Article) string {
	h := xxhash.New()
	_, _ = h.WriteString(a.Title)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(a.Abstract)
	if a.Text != nil {
		for _, name := range a.Text.Sections() {
			_, _ = h.WriteString("\x00")
			_, _ = h.WriteString(name)
			for _, p := range a.Text.Paragraphs(name) {
				_, _ = h.WriteString("\x00")
				_, _ = h.WriteString(p)
			}
		}
	}

	sum := h.Sum64()
	var b [8]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(sum >> (56 - 8*i))
	}
	return hex.EncodeToString(b[:])
}
