package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/cdoc"
	"github.com/fwojciec/cdoc/catalog"
	"github.com/fwojciec/cdoc/etree"
	"github.com/fwojciec/cdoc/fs"
	"github.com/fwojciec/cdoc/html"
	cdochttp "github.com/fwojciec/cdoc/http"
	"github.com/fwojciec/cdoc/htmltomarkdown"
	"github.com/fwojciec/cdoc/json"
	cdocslog "github.com/fwojciec/cdoc/slog"
	"github.com/fwojciec/cdoc/sqlite"
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
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
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
		kong.Name("cdoc"),
		kong.Description("Extract and render documentation from /** */ comments."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'cdoc --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)

	var httpOpts []cdochttp.Option
	if cli.Add.Rate > 0 {
		httpOpts = append(httpOpts, cdochttp.WithRateLimit(cli.Add.Rate))
	}
	var reader cdoc.SourceReader = cdochttp.NewReader(fs.NewReader(), httpOpts...)
	if cli.Verbose {
		reader = cdocslog.NewLoggingSourceReader(reader, deps.Logger)
	}
	deps.Reader = reader
	deps.Renderer = func(format cdoc.Format) cdoc.Renderer {
		r := newRenderer(format)
		if cli.Verbose {
			return cdocslog.NewLoggingRenderer(r, format, deps.Logger)
		}
		return r
	}
	deps.OutputStore = NewOutputStore

	// Rendering needs no catalog.
	cmd := strings.Fields(kongCtx.Command())[0]
	if cmd != "render" {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set CDOC_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		var sources cdoc.SourceService = sqlite.NewSourceService(m.DB)
		if cli.Verbose {
			sources = cdocslog.NewLoggingSourceService(sources, deps.Logger)
		}
		deps.DB = m.DB
		deps.Sources = sources
		deps.Entries = sqlite.NewEntryService(m.DB)
	}

	if cmd == "add" {
		deps.Indexer = &catalog.Indexer{
			Reader:      deps.Reader,
			Sources:     deps.Sources,
			Entries:     deps.Entries,
			Concurrency: cli.Add.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

// expandInputs resolves file paths and glob patterns and keeps http(s) URLs
// as given, after the files.
func expandInputs(patterns []string) ([]string, error) {
	var urls, local []string
	for _, p := range patterns {
		if cdochttp.IsURL(p) {
			urls = append(urls, p)
		} else {
			local = append(local, p)
		}
	}

	var inputs []string
	if len(local) > 0 {
		files, err := fs.Expand(local)
		if err != nil {
			return nil, err
		}
		inputs = files
	}
	return append(inputs, urls...), nil
}

// newRenderer returns the renderer for format.
func newRenderer(format cdoc.Format) cdoc.Renderer {
	switch format {
	case cdoc.FormatMarkdown:
		return htmltomarkdown.NewRenderer(html.NewRenderer(), htmltomarkdown.NewConverter())
	case cdoc.FormatJSON:
		return json.NewRenderer()
	case cdoc.FormatXML:
		return etree.NewRenderer()
	}
	return html.NewRenderer()
}

// newLogger returns a text logger on w when verbose, otherwise a logger
// that drops everything.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, nil))
}

func defaultDBPath() string {
	if path := os.Getenv("CDOC_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "cdoc.db"
	}
	dir := filepath.Join(home, ".cdoc")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "cdoc.db")
}
