package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pmcfetch"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Search    pmcfetch.SearchService
	Texts     map[pmcfetch.TextSource]pmcfetch.TextService
	Citations pmcfetch.CitationService
	Catalog   pmcfetch.Catalog
	Logger    *slog.Logger

	// OutDir overrides the base directory for output. Empty means the
	// current directory.
	OutDir string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `short:"C" type:"path" help:"Path to a YAML config file"`

	Fetch  FetchCmd  `cmd:"" help:"Search Europe PMC and save article records"`
	Filter FilterCmd `cmd:"" help:"Copy records whose license permits derivative use"`
	Stats  StatsCmd  `cmd:"" help:"Summarize a directory of article records"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	Query     string        `arg:"" help:"Europe PMC search query"`
	Source    string        `name:"text-from" short:"s" default:"none" help:"Full text source: none, epmc, ncbi or bioc"`
	Name      string        `name:"output" short:"o" help:"Output directory name (default: fetch-<timestamp>)"`
	Max       int           `name:"max-records" short:"n" help:"Maximum number of records to fetch"`
	Database  string        `name:"catalog" help:"SQLite catalog path (omit to skip cataloging)"`
	RateLimit float64       `name:"rate" default:"3" help:"Requests per second"`
	Timeout   time.Duration `default:"30s" help:"Request timeout"`
	Verbose   bool          `short:"v" help:"Log every request to stderr"`
}

// FilterCmd is the "filter" subcommand.
type FilterCmd struct {
	Dir string `arg:"" help:"Directory of article records to filter"`
	Out string `name:"output" short:"o" help:"Destination directory (default: <dir>_filtered)"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct {
	Dir      string `arg:"" optional:"" help:"Directory of article records to summarize"`
	Database string `name:"catalog" help:"Summarize a SQLite catalog instead of a directory"`
}
