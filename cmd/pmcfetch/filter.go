package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/pmcfetch"
	"github.com/fwojciec/pmcfetch/fs"
)

// Run executes the filter command.
func (c *FilterCmd) Run(deps *Dependencies) error {
	out := c.Out
	if out == "" {
		out = filepath.Clean(c.Dir) + "_filtered"
	}

	if err := os.MkdirAll(out, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}

	kept, dropped := 0, 0
	err := fs.EachArticle(c.Dir, func(path string, article *pmcfetch.Article) {
		if !pmcfetch.LicenseAllowed(article.License) {
			dropped++
			return
		}
		dst := filepath.Join(out, filepath.Base(path))
		if err := fs.CopyFile(path, dst); err != nil {
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", filepath.Base(path), err)
			return
		}
		kept++
	}, func(path string, err error) {
		fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", filepath.Base(path), err)
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pmcfetch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Kept %d records, dropped %d (no-derivatives license) into %s\n", kept, dropped, out)
	return nil
}
