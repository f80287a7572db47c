package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/pmcfetch"
	"github.com/fwojciec/pmcfetch/fs"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	var stats *pmcfetch.Stats

	switch {
	case deps.Catalog != nil:
		s, err := deps.Catalog.Stats(deps.Ctx)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pmcfetch.ErrorMessage(err))
			return err
		}
		stats = s
	case c.Dir != "":
		stats = pmcfetch.NewStats()
		err := fs.EachArticle(c.Dir, func(path string, article *pmcfetch.Article) {
			article.License = pmcfetch.NormalizeLicense(article.License)
			stats.Observe(article)
		}, func(path string, err error) {
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", filepath.Base(path), err)
		})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pmcfetch.ErrorMessage(err))
			return err
		}
	default:
		return fmt.Errorf("provide a directory or --catalog")
	}

	fmt.Fprintf(deps.Stdout, "Articles:      %d\n", stats.Total)
	fmt.Fprintf(deps.Stdout, "With abstract: %d (%.1f%%)\n", stats.WithAbstract, stats.PercentWithAbstract())
	fmt.Fprintf(deps.Stdout, "With text:     %d (%.1f%%)\n", stats.WithText, stats.PercentWithText())

	licenses := stats.Licenses()
	if len(licenses) > 0 {
		fmt.Fprintln(deps.Stdout, "Licenses:")
		for _, lc := range licenses {
			label := lc.License
			if label == "" {
				label = "(none)"
			}
			fmt.Fprintf(deps.Stdout, "  %-20s %d\n", label, lc.Count)
		}
	}

	return nil
}
