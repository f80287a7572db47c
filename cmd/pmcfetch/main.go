package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pmcfetch"
	pmchttp "github.com/fwojciec/pmcfetch/http"
	pmcslog "github.com/fwojciec/pmcfetch/slog"
	"github.com/fwojciec/pmcfetch/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()
	defer m.Close()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Defaults mirrored from the kong tags on FetchCmd.
const (
	defaultRateLimit = 3.0
	defaultTimeout   = 30 * time.Second
)

// Main represents the program.
type Main struct {
	// SQLite database backing the catalog, opened when a database path
	// is configured.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pmcfetch"),
		kong.Description("Fetch scientific article metadata and full text from PubMed Central"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pmcfetch --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	cfg, err := loadConfig(cli.Config)
	if err != nil {
		return err
	}

	if cmd == "fetch" {
		if err := m.wireFetch(deps, cli, cfg, stderr); err != nil {
			return err
		}
	}

	if cmd == "stats" && cli.Stats.Database != "" {
		db := sqlite.NewDB(cli.Stats.Database)
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open catalog at %q: %w", cli.Stats.Database, err)
		}
		m.DB = db
		deps.Catalog = sqlite.NewCatalog(db)
	}

	return kongCtx.Run(deps)
}

// wireFetch builds the HTTP clients and catalog for the fetch command.
// Config file values fill in for flags left at their defaults.
func (m *Main) wireFetch(deps *Dependencies, cli *CLI, cfg *Config, stderr io.Writer) error {
	rateLimit := cli.Fetch.RateLimit
	if rateLimit == defaultRateLimit && cfg.RateLimit > 0 {
		rateLimit = cfg.RateLimit
	}
	timeout := cli.Fetch.Timeout
	if timeout == defaultTimeout && cfg.Timeout > 0 {
		timeout = time.Duration(cfg.Timeout)
	}

	opts := []pmchttp.Option{
		pmchttp.WithRateLimit(rateLimit),
		pmchttp.WithTimeout(timeout),
	}
	if cfg.UserAgent != "" {
		opts = append(opts, pmchttp.WithUserAgent(cfg.UserAgent))
	}

	level := slog.LevelWarn
	if cli.Fetch.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	deps.Search = pmchttp.NewSearchClient(opts...)
	deps.Citations = pmcslog.NewLoggingCitationService(pmchttp.NewCitationClient(opts...), logger)
	deps.Texts = map[pmcfetch.TextSource]pmcfetch.TextService{
		pmcfetch.TextSourceEPMC: pmcslog.NewLoggingTextService(pmchttp.NewEPMCTextService(opts...), pmcfetch.TextSourceEPMC, logger),
		pmcfetch.TextSourceNCBI: pmcslog.NewLoggingTextService(pmchttp.NewNCBITextService(opts...), pmcfetch.TextSourceNCBI, logger),
		pmcfetch.TextSourceBioC: pmcslog.NewLoggingTextService(pmchttp.NewBioCTextService(opts...), pmcfetch.TextSourceBioC, logger),
	}

	dbPath := cli.Fetch.Database
	if dbPath == "" {
		dbPath = cfg.Database
	}
	if dbPath != "" {
		db := sqlite.NewDB(dbPath)
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open catalog at %q: %w", dbPath, err)
		}
		m.DB = db
		deps.Catalog = sqlite.NewCatalog(db)
	}

	return nil
}
