package http

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/fwojciec/pmcfetch"
	"github.com/fwojciec/pmcfetch/bioc"
	"github.com/fwojciec/pmcfetch/jats"
)

// Full-text service endpoints.
const (
	DefaultEPMCBaseURL = "https://www.ebi.ac.uk/europepmc/webservices/rest"
	DefaultNCBIBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"
	DefaultBioCBaseURL = "https://www.ncbi.nlm.nih.gov/research/bionlp/RESTful/pmcoa.cgi"
)

// Compile-time interface verification.
var (
	_ pmcfetch.TextService = (*EPMCTextService)(nil)
	_ pmcfetch.TextService = (*NCBITextService)(nil)
	_ pmcfetch.TextService = (*BioCTextService)(nil)
)

// EPMCTextService retrieves JATS full text from the Europe PMC
// fullTextXML endpoint.
type EPMCTextService struct {
	c *client
}

// NewEPMCTextService creates a new EPMCTextService.
func NewEPMCTextService(opts ...Option) *EPMCTextService {
	return &EPMCTextService{c: newClient(DefaultEPMCBaseURL, opts...)}
}

// GetText returns the normalized section model for a PMCID.
func (s *EPMCTextService) GetText(ctx context.Context, pmcid string) (*pmcfetch.SectionModel, error) {
	body, err := s.c.get(ctx, s.c.baseURL+"/"+url.PathEscape(pmcid)+"/fullTextXML", nil)
	if err != nil {
		return nil, err
	}
	return jats.Normalize(body)
}

// NCBITextService retrieves JATS full text via NCBI efetch (db=pmc).
type NCBITextService struct {
	c *client
}

// NewNCBITextService creates a new NCBITextService.
func NewNCBITextService(opts ...Option) *NCBITextService {
	return &NCBITextService{c: newClient(DefaultNCBIBaseURL, opts...)}
}

// GetText returns the normalized section model for a PMCID.
func (s *NCBITextService) GetText(ctx context.Context, pmcid string) (*pmcfetch.SectionModel, error) {
	params := url.Values{
		"db":      {"pmc"},
		"id":      {pmcid},
		"retmode": {"xml"},
	}
	body, err := s.c.get(ctx, s.c.baseURL, params)
	if err != nil {
		return nil, err
	}
	return jats.Normalize(body)
}

// BioCTextService retrieves passage-based full text from the NCBI BioNLP
// BioC service.
type BioCTextService struct {
	c *client
}

// NewBioCTextService creates a new BioCTextService.
func NewBioCTextService(opts ...Option) *BioCTextService {
	return &BioCTextService{c: newClient(DefaultBioCBaseURL, opts...)}
}

// GetText returns the normalized section model for a PMCID. The service
// reports missing articles with a 200 response whose body starts with
// "[Error]"; those map to ENOTFOUND.
func (s *BioCTextService) GetText(ctx context.Context, pmcid string) (*pmcfetch.SectionModel, error) {
	body, err := s.c.get(ctx, s.c.baseURL+"/BioC_json/"+url.PathEscape(pmcid)+"/unicode", nil)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(bytes.TrimSpace(body), []byte("[Error]")) {
		return nil, pmcfetch.Errorf(pmcfetch.ENOTFOUND, "no BioC full text for %s: %s",
			pmcid, strings.TrimSpace(string(body)))
	}
	return bioc.Normalize(body)
}
