package pmcfetch

import "strings"

// CitationAuthor is one author as parsed from a PubMed citation record.
type CitationAuthor struct {
	LastName string
	Initials string
}

// CitationData holds the bibliographic fields needed to format a citation.
// Missing fields are empty strings and are omitted from the output rather
// than rendered as placeholders.
type CitationData struct {
	Authors []CitationAuthor
	Title   string
	Journal string
	Year    string
	Volume  string
	Issue   string
	Pages   string
	DOI     string
}

// Citation returns both the full and the short APA citation.
func (d CitationData) Citation() Citation {
	return Citation{APA: d.APA(), APAShort: d.APAShort()}
}

// APA returns an APA-style reference list citation, e.g.
// "Smith, J., & Doe, A. (2020). Title. *Journal*, 12(3), 45-67. https://doi.org/10.1/x".
func (d CitationData) APA() string {
	var b strings.Builder

	if authors := d.referenceAuthors(); authors != "" {
		b.WriteString(authors)
		b.WriteString(" ")
	}
	b.WriteString("(")
	b.WriteString(d.year())
	b.WriteString("). ")
	if d.Title != "" {
		b.WriteString(d.Title)
		b.WriteString(". ")
	}
	b.WriteString("*")
	b.WriteString(d.Journal)
	b.WriteString("*")
	if d.Volume != "" {
		b.WriteString(", ")
		b.WriteString(d.Volume)
	}
	if d.Issue != "" {
		b.WriteString("(")
		b.WriteString(d.Issue)
		b.WriteString(")")
	}
	if d.Pages != "" {
		b.WriteString(", ")
		b.WriteString(d.Pages)
	}
	if d.DOI != "" {
		b.WriteString(". https://doi.org/")
		b.WriteString(d.DOI)
	} else {
		b.WriteString(".")
	}

	return b.String()
}

// APAShort returns an in-text APA citation, e.g. "(Smith et al., 2020)".
// Author lists longer than two are truncated to the first author plus
// "et al.".
func (d CitationData) APAShort() string {
	year := d.year()
	last := d.lastNames()

	switch len(last) {
	case 0:
		return "(" + d.Journal + ", " + year + ")"
	case 1:
		return "(" + last[0] + ", " + year + ")"
	case 2:
		return "(" + last[0] + " & " + last[1] + ", " + year + ")"
	default:
		return "(" + last[0] + " et al., " + year + ")"
	}
}

func (d CitationData) lastNames() []string {
	names := make([]string, 0, len(d.Authors))
	for _, a := range d.Authors {
		if a.LastName == "" || a.Initials == "" {
			continue
		}
		names = append(names, a.LastName)
	}
	return names
}

func (d CitationData) year() string {
	if d.Year == "" {
		return "n.d."
	}
	return d.Year
}

// referenceAuthors formats the author list for the reference citation.
// Up to seven authors are listed in full; longer lists are truncated to
// the first six plus an ellipsis plus the final author.
func (d CitationData) referenceAuthors() string {
	names := make([]string, 0, len(d.Authors))
	for _, a := range d.Authors {
		if a.LastName == "" || a.Initials == "" {
			continue
		}
		names = append(names, a.LastName+", "+a.Initials+".")
	}

	switch n := len(names); {
	case n == 0:
		return ""
	case n == 1:
		return names[0]
	case n <= 7:
		return strings.Join(names[:n-1], ", ") + ", & " + names[n-1]
	default:
		return strings.Join(names[:6], ", ") + ", ... " + names[n-1]
	}
}
