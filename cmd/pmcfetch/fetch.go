package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/pmcfetch"
	"github.com/fwojciec/pmcfetch/bloom"
	"github.com/fwojciec/pmcfetch/fetch"
	"github.com/fwojciec/pmcfetch/fs"
)

// bloomCapacity sizes the dedup filter. Europe PMC caps queries well below
// this, and the filter degrades gracefully past it.
const bloomCapacity = 1_000_000

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	source, err := pmcfetch.ParseTextSource(c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pmcfetch.ErrorMessage(err))
		return err
	}

	name := c.Name
	if name == "" {
		name = "fetch-" + time.Now().UTC().Format("20060102-150405")
	}
	writer := fs.NewWriter(deps.OutDir, name)

	runner := &fetch.Runner{
		Search:     deps.Search,
		Texts:      deps.Texts,
		Citations:  deps.Citations,
		Writer:     writer,
		Catalog:    deps.Catalog,
		Seen:       bloom.NewFilter(bloomCapacity, 0.001),
		Logger:     deps.Logger,
		Source:     source,
		MaxRecords: c.Max,
		Progress: func(p fetch.Progress) {
			fmt.Fprintf(deps.Stdout, "\r%d/%d %s", p.Completed, p.Total, p.FileID)
		},
	}

	written, err := runner.Run(deps.Ctx, c.Query)
	if written > 0 {
		fmt.Fprintln(deps.Stdout)
	}
	if err != nil {
		if abortErr := writer.Abort(); abortErr != nil {
			fmt.Fprintf(deps.Stderr, "failed to clean up %s: %v\n", writer.Dir(), abortErr)
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", pmcfetch.ErrorMessage(err))
		return err
	}

	if written == 0 {
		fmt.Fprintln(deps.Stdout, "No articles matched the query.")
		return writer.Abort()
	}

	if err := writer.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pmcfetch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d records to %s\n", written, writer.Dir())
	return nil
}
