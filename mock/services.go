// Package mock provides function-field mock implementations of the
// pmcfetch service interfaces for testing.
package mock

import (
	"context"

	"github.com/fwojciec/pmcfetch"
)

// Compile-time interface verification.
var (
	_ pmcfetch.SearchService   = (*SearchService)(nil)
	_ pmcfetch.TextService     = (*TextService)(nil)
	_ pmcfetch.CitationService = (*CitationService)(nil)
	_ pmcfetch.ArticleWriter   = (*ArticleWriter)(nil)
	_ pmcfetch.Catalog         = (*Catalog)(nil)
)

// SearchService is a mock implementation of pmcfetch.SearchService.
type SearchService struct {
	CountFn  func(ctx context.Context, query string) (int, error)
	SearchFn func(ctx context.Context, query string, fn func(pmcfetch.Metadata) bool) error
}

func (s *SearchService) Count(ctx context.Context, query string) (int, error) {
	return s.CountFn(ctx, query)
}

func (s *SearchService) Search(ctx context.Context, query string, fn func(pmcfetch.Metadata) bool) error {
	return s.SearchFn(ctx, query, fn)
}

// TextService is a mock implementation of pmcfetch.TextService.
type TextService struct {
	GetTextFn func(ctx context.Context, pmcid string) (*pmcfetch.SectionModel, error)
}

func (s *TextService) GetText(ctx context.Context, pmcid string) (*pmcfetch.SectionModel, error) {
	return s.GetTextFn(ctx, pmcid)
}

// CitationService is a mock implementation of pmcfetch.CitationService.
type CitationService struct {
	CiteFn func(ctx context.Context, pmid string) (*pmcfetch.Citation, error)
}

func (s *CitationService) Cite(ctx context.Context, pmid string) (*pmcfetch.Citation, error) {
	return s.CiteFn(ctx, pmid)
}

// ArticleWriter is a mock implementation of pmcfetch.ArticleWriter.
type ArticleWriter struct {
	WriteArticleFn func(ctx context.Context, article *pmcfetch.Article) error
}

func (w *ArticleWriter) WriteArticle(ctx context.Context, article *pmcfetch.Article) error {
	return w.WriteArticleFn(ctx, article)
}

// Catalog is a mock implementation of pmcfetch.Catalog.
type Catalog struct {
	BeginRunFn     func(ctx context.Context, query string, source pmcfetch.TextSource) (string, error)
	IndexArticleFn func(ctx context.Context, runID string, article *pmcfetch.Article) error
	StatsFn        func(ctx context.Context) (*pmcfetch.Stats, error)
}

func (c *Catalog) BeginRun(ctx context.Context, query string, source pmcfetch.TextSource) (string, error) {
	return c.BeginRunFn(ctx, query, source)
}

func (c *Catalog) IndexArticle(ctx context.Context, runID string, article *pmcfetch.Article) error {
	return c.IndexArticleFn(ctx, runID, article)
}

func (c *Catalog) Stats(ctx context.Context) (*pmcfetch.Stats, error) {
	return c.StatsFn(ctx)
}
