// Package fetch orchestrates one fetch run: searching Europe PMC,
// retrieving citations and full text per article, assembling immutable
// article records and handing them to the writer. Articles are processed
// strictly sequentially; a single article's failure never aborts the run.
package fetch

import (
	"github.com/fwojciec/pmcfetch"
	"github.com/fwojciec/pmcfetch/bioc"
	"github.com/fwojciec/pmcfetch/jats"
)

// Normalize routes a raw full-text payload to the normalizer matching its
// source. TextSourceNone (and any unhandled source) yields a nil model and
// no error, leaving the record's text null.
func Normalize(data []byte, source pmcfetch.TextSource) (*pmcfetch.SectionModel, error) {
	switch source {
	case pmcfetch.TextSourceEPMC, pmcfetch.TextSourceNCBI:
		return jats.Normalize(data)
	case pmcfetch.TextSourceBioC:
		return bioc.Normalize(data)
	default:
		return nil, nil
	}
}
