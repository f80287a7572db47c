package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/fwojciec/pmcfetch"
)

// Europe PMC REST search endpoint and limits.
const (
	DefaultSearchBaseURL = "https://www.ebi.ac.uk/europepmc/webservices/rest/search"

	// MaxPageSize is the Europe PMC page size limit.
	MaxPageSize = 1000
)

// Ensure SearchClient implements pmcfetch.SearchService at compile time.
var _ pmcfetch.SearchService = (*SearchClient)(nil)

// SearchClient queries the Europe PMC REST search API with cursor-based
// pagination.
type SearchClient struct {
	c        *client
	pageSize int
}

// NewSearchClient creates a new SearchClient.
func NewSearchClient(opts ...Option) *SearchClient {
	return &SearchClient{
		c:        newClient(DefaultSearchBaseURL, opts...),
		pageSize: MaxPageSize,
	}
}

type searchResponse struct {
	HitCount       int    `json:"hitCount"`
	NextCursorMark string `json:"nextCursorMark"`
	ResultList     struct {
		Result []searchResult `json:"result"`
	} `json:"resultList"`
}

type searchResult struct {
	ID           string `json:"id"`
	PMID         string `json:"pmid"`
	PMCID        string `json:"pmcid"`
	Title        string `json:"title"`
	AuthorString string `json:"authorString"`
	JournalInfo  struct {
		Journal struct {
			Title string `json:"title"`
		} `json:"journal"`
	} `json:"journalInfo"`
	PubYear      string `json:"pubYear"`
	DOI          string `json:"doi"`
	License      string `json:"license"`
	AbstractText string `json:"abstractText"`
}

func (r searchResult) metadata() pmcfetch.Metadata {
	return pmcfetch.Metadata{
		ID:       r.ID,
		PMID:     r.PMID,
		PMCID:    r.PMCID,
		Title:    r.Title,
		Authors:  r.AuthorString,
		Journal:  r.JournalInfo.Journal.Title,
		Year:     r.PubYear,
		DOI:      r.DOI,
		License:  r.License,
		Abstract: r.AbstractText,
	}
}

// Count returns the total number of hits for the query.
func (s *SearchClient) Count(ctx context.Context, query string) (int, error) {
	// Europe PMC requires pageSize >= 1 for resultType=core.
	resp, err := s.page(ctx, query, "*", 1)
	if err != nil {
		return 0, err
	}
	return resp.HitCount, nil
}

// Search calls fn for each metadata record across all result pages in
// result order. Iteration stops early when fn returns false.
func (s *SearchClient) Search(ctx context.Context, query string, fn func(pmcfetch.Metadata) bool) error {
	cursor := "*"
	for {
		resp, err := s.page(ctx, query, cursor, s.pageSize)
		if err != nil {
			return err
		}
		if len(resp.ResultList.Result) == 0 {
			return nil
		}

		for _, r := range resp.ResultList.Result {
			if !fn(r.metadata()) {
				return nil
			}
		}

		if resp.NextCursorMark == "" || resp.NextCursorMark == cursor {
			return nil
		}
		cursor = resp.NextCursorMark
	}
}

func (s *SearchClient) page(ctx context.Context, query, cursor string, pageSize int) (*searchResponse, error) {
	params := url.Values{
		"query":      {query},
		"format":     {"json"},
		"cursorMark": {cursor},
		"pageSize":   {strconv.Itoa(pageSize)},
		"resultType": {"core"},
	}

	body, err := s.c.get(ctx, s.c.baseURL, params)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return &resp, nil
}
