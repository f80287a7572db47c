package fetch

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/pmcfetch"
	"github.com/fwojciec/pmcfetch/bloom"
	"golang.org/x/sync/errgroup"
)

// Progress reports per-article progress during a run.
type Progress struct {
	FileID    string
	Completed int
	Total     int
}

// ProgressFunc is called after each article is written.
type ProgressFunc func(Progress)

// Runner executes one fetch run. Articles are processed one at a time,
// start to finish, in search result order; only the citation and full-text
// requests for a single article run concurrently.
type Runner struct {
	Search    pmcfetch.SearchService
	Texts     map[pmcfetch.TextSource]pmcfetch.TextService
	Citations pmcfetch.CitationService
	Writer    pmcfetch.ArticleWriter

	// Catalog, if set, indexes the run and its articles.
	Catalog pmcfetch.Catalog

	// Seen, if set, deduplicates article IDs across cursor pages.
	Seen *bloom.Filter

	Logger *slog.Logger

	// Source selects the full-text provider. TextSourceNone fetches
	// metadata only.
	Source pmcfetch.TextSource

	// MaxRecords limits the number of records written. Zero fetches all.
	MaxRecords int

	Progress ProgressFunc
}

// Run fetches all matching articles for the query and returns the number
// of records written. Per-article citation or full-text failures are
// logged and downgraded; only search, write and context errors abort the
// run.
func (r *Runner) Run(ctx context.Context, query string) (int, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	limit := r.MaxRecords
	if limit <= 0 {
		total, err := r.Search.Count(ctx, query)
		if err != nil {
			return 0, err
		}
		limit = total
	}

	var runID string
	if r.Catalog != nil {
		id, err := r.Catalog.BeginRun(ctx, query, r.Source)
		if err != nil {
			return 0, err
		}
		runID = id
	}

	written := 0
	var runErr error
	err := r.Search.Search(ctx, query, func(meta pmcfetch.Metadata) bool {
		if ctx.Err() != nil {
			runErr = ctx.Err()
			return false
		}

		fileID := meta.FileID()
		if fileID == "" {
			logger.Warn("skipping record with no identifier")
			return true
		}
		if r.Seen != nil {
			if r.Seen.Seen(fileID) {
				return true
			}
			r.Seen.Add(fileID)
		}

		article := r.process(ctx, logger, meta)

		if err := r.Writer.WriteArticle(ctx, article); err != nil {
			runErr = err
			return false
		}
		if r.Catalog != nil {
			if err := r.Catalog.IndexArticle(ctx, runID, article); err != nil {
				logger.Warn("failed to index article", "id", fileID, "error", err)
			}
		}

		written++
		if r.Progress != nil {
			r.Progress(Progress{FileID: fileID, Completed: written, Total: limit})
		}
		return written < limit
	})
	if err != nil {
		return written, err
	}
	return written, runErr
}

// process retrieves the citation and full text for one article and
// assembles the record. Retrieval failures are logged and resolved as
// missing fields, never as errors.
func (r *Runner) process(ctx context.Context, logger *slog.Logger, meta pmcfetch.Metadata) *pmcfetch.Article {
	var citation *pmcfetch.Citation
	var text *pmcfetch.SectionModel

	g, gctx := errgroup.WithContext(ctx)

	if r.Citations != nil && meta.PMID != "" {
		g.Go(func() error {
			c, err := r.Citations.Cite(gctx, meta.PMID)
			if err != nil {
				logger.Warn("citation retrieval failed",
					"pmid", meta.PMID,
					"code", pmcfetch.ErrorCode(err),
					"error", pmcfetch.ErrorMessage(err))
				return nil
			}
			citation = c
			return nil
		})
	}

	if r.Source != pmcfetch.TextSourceNone && meta.PMCID != "" {
		if svc, ok := r.Texts[r.Source]; ok {
			g.Go(func() error {
				m, err := svc.GetText(gctx, meta.PMCID)
				if err != nil {
					logger.Warn("full text retrieval failed",
						"pmcid", meta.PMCID,
						"source", r.Source.String(),
						"code", pmcfetch.ErrorCode(err),
						"error", pmcfetch.ErrorMessage(err))
					return nil
				}
				text = m
				return nil
			})
		}
	}

	// Sub-fetch failures are downgraded above, so Wait never errors.
	_ = g.Wait()

	return Assemble(meta, citation, text)
}
