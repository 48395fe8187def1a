package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/csc"
	"github.com/fwojciec/csc/bluemonday"
	"github.com/fwojciec/csc/fs"
	"github.com/fwojciec/csc/htmltomarkdown"
	cschttp "github.com/fwojciec/csc/http"
	cscslog "github.com/fwojciec/csc/slog"
	"github.com/fwojciec/csc/sqlite"
	"github.com/fwojciec/csc/toml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Getenv reads configuration overrides. Set before calling Run().
	Getenv func(string) string

	// Configuration loaded by Run().
	Config csc.Config

	// SQLite database used by the cart storage and the search index.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Getenv: os.Getenv}
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
		kong.Name("csc"),
		kong.Description("Shopping cart and site search for the Central Supply Catalog."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'csc --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd = strings.Fields(kongCtx.Command())[0]

	configPath := toml.ConfigPath(m.Getenv)
	m.Config, err = toml.Load(configPath, m.Getenv)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", csc.ErrorMessage(err))
		return fmt.Errorf("failed to load config %q: %w", configPath, err)
	}
	deps.Config = m.Config
	deps.Verbose = cli.Verbose

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	needsDB := m.Config.Storage == csc.StorageSQLite || cmd == "search"
	if needsDB {
		m.DB = sqlite.NewDB(m.Config.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set %s to use a different database path\n", toml.EnvDB)
			return fmt.Errorf("failed to open database at %q: %w", m.Config.DBPath, err)
		}
		defer m.Close()
	}

	switch m.Config.Storage {
	case csc.StorageSQLite:
		deps.Storage = sqlite.NewCartStorage(m.DB, m.Config.CartKey)
	case csc.StorageFile:
		deps.Storage = fs.NewCartStorage(m.Config.CartFile, m.Config.CartKey)
	}

	if cmd == "search" || cmd == "sitemap" {
		pageURL := ""
		var opts []cschttp.Option
		if cmd == "search" {
			pageURL = cli.Search.URL
			if cli.Search.Timeout > 0 {
				opts = append(opts, cschttp.WithTimeout(cli.Search.Timeout))
			}
		}
		deps.Source, err = indexSource(m.Config.Index, pageURL, opts...)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", csc.ErrorMessage(err))
			return err
		}
	}

	if cmd == "search" {
		deps.Index = sqlite.NewSearchIndex(m.DB)
		deps.Sanitizer = bluemonday.NewSanitizer()
		deps.Converter = htmltomarkdown.NewConverter(htmltomarkdown.WithSiteURL(m.Config.SiteURL))
	}

	if cli.Verbose {
		if deps.Storage != nil {
			deps.Storage = cscslog.NewLoggingCartStorage(deps.Storage, deps.Logger)
		}
		if deps.Source != nil {
			deps.Source = cscslog.NewLoggingIndexSource(deps.Source, deps.Logger)
		}
		if deps.Index != nil {
			deps.Index = cscslog.NewLoggingSearchIndex(deps.Index, deps.Logger)
		}
	}

	return kongCtx.Run(deps)
}

// indexSource selects where the search index is read from. An absolute
// index URL is fetched as is; a relative index path is fetched relative to
// pageURL when one is given and read from disk otherwise.
func indexSource(index, pageURL string, opts ...cschttp.Option) (csc.IndexSource, error) {
	switch {
	case isHTTP(index):
		return cschttp.NewIndexSource(index, opts...), nil
	case isHTTP(pageURL):
		u, err := cschttp.ResolveIndexURL(pageURL, index)
		if err != nil {
			return nil, err
		}
		return cschttp.NewIndexSource(u, opts...), nil
	default:
		return fs.NewIndexSource(index), nil
	}
}

func isHTTP(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
