package sqlite

import (
	"context"
	"time"

	"github.com/fwojciec/pmcfetch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pmcfetch.Catalog = (*Catalog)(nil)

// Catalog implements pmcfetch.Catalog using SQLite.
type Catalog struct {
	db *DB
}

// NewCatalog creates a new Catalog.
func NewCatalog(db *DB) *Catalog {
	return &Catalog{db: db}
}

// BeginRun records a new fetch run and returns its ID.
func (c *Catalog) BeginRun(ctx context.Context, query string, source pmcfetch.TextSource) (string, error) {
	id := uuid.New().String()

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO runs (id, query, source, started_at)
		VALUES (?, ?, ?, ?)
	`, id, query, source.String(), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", err
	}

	return id, nil
}

// IndexArticle records one fetched article under the given run.
func (c *Catalog) IndexArticle(ctx context.Context, runID string, article *pmcfetch.Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO articles (file_id, run_id, pmid, pmcid, license, year, has_abstract, has_text, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, article.FileID(), runID, article.PMID, article.PMCID,
		pmcfetch.NormalizeLicense(article.License), article.Year,
		boolToInt(article.Abstract != ""), boolToInt(article.Text != nil),
		article.ContentHash, article.FetchedAt.Format(time.RFC3339))

	return err
}

// Stats aggregates counts across all indexed articles.
func (c *Catalog) Stats(ctx context.Context) (*pmcfetch.Stats, error) {
	stats := pmcfetch.NewStats()

	err := c.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(has_abstract), 0), COALESCE(SUM(has_text), 0)
		FROM articles
	`).Scan(&stats.Total, &stats.WithAbstract, &stats.WithText)
	if err != nil {
		return nil, err
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT license, COUNT(*)
		FROM articles
		GROUP BY license
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var license string
		var n int
		if err := rows.Scan(&license, &n); err != nil {
			return nil, err
		}
		stats.AddLicense(license, n)
	}

	return stats, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
