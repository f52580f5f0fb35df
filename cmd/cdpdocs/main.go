package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/cdpdocs"
	"github.com/fwojciec/cdpdocs/crawl"
	"github.com/fwojciec/cdpdocs/fs"
	"github.com/fwojciec/cdpdocs/gemini"
	"github.com/fwojciec/cdpdocs/goquery"
	cdphttp "github.com/fwojciec/cdpdocs/http"
	"github.com/fwojciec/cdpdocs/onnx"
	"github.com/fwojciec/cdpdocs/rod"
	cdpslog "github.com/fwojciec/cdpdocs/slog"
	"github.com/fwojciec/cdpdocs/sqlite"
	"github.com/fwojciec/cdpdocs/xxhash"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// defaultSQLitePath is the database used by --store sqlite without --corpus.
// The JSON store defaults to fs.DefaultCorpusPath.
const defaultSQLitePath = "cdpdocs.db"

// rateLimit is the number of requests per second sent to one documentation host.
const rateLimit = 2.0

// Main represents the program.
type Main struct {
	// Services for end-to-end testing. When nil, Run builds them from flags.
	Store    cdpdocs.CorpusStore
	Embedder cdpdocs.Embedder
	Direct   cdpdocs.Fetcher
	Rendered cdpdocs.Fetcher

	// SQLite database opened for the sqlite store.
	DB *sqlite.DB

	closers []func() error
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close releases everything Run opened, in reverse order.
func (m *Main) Close() error {
	var first error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	m.closers = nil
	return first
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
		kong.Name("cdpdocs"),
		kong.Description("Answer questions about CDP vendor documentation"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'cdpdocs --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if deps.Sources, err = LoadSources(cli.Sources); err != nil {
		return fmt.Errorf("failed to load sources: %w", err)
	}

	cmd := strings.Fields(kongCtx.Command())[0]

	store, err := m.openStore(cli, deps.Logger)
	if err != nil {
		return err
	}
	deps.Store = cdpslog.NewLoggingCorpusStore(store, deps.Logger)
	if inspector, ok := store.(cdpdocs.CorpusInspector); ok {
		deps.Inspector = inspector
	}

	if cmd == "crawl" || (cmd == "serve" && cli.Serve.Crawl) {
		deps.Crawler = m.newCrawler(deps.Logger)
	}

	if cmd == "index" || cmd == "ask" || cmd == "serve" {
		embedder, err := m.openEmbedder(ctx, cli, stderr)
		if err != nil {
			return err
		}
		deps.Embedder = cdpslog.NewLoggingEmbedder(embedder, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// openStore returns the injected store or the one selected by --store.
func (m *Main) openStore(cli *CLI, logger *slog.Logger) (cdpdocs.CorpusStore, error) {
	if m.Store != nil {
		return m.Store, nil
	}

	switch cli.Store {
	case "sqlite":
		path := cli.Corpus
		if path == "" {
			path = defaultSQLitePath
		}
		m.DB = sqlite.NewDB(path)
		if err := m.DB.Open(); err != nil {
			return nil, fmt.Errorf("failed to open database at %q: %w", path, err)
		}
		m.closers = append(m.closers, m.DB.Close)
		logger.Debug("corpus store", "backend", "sqlite", "path", m.DB.Path())
		return sqlite.NewCorpusStore(m.DB), nil
	default:
		file := fs.NewCorpusFile(cli.Corpus)
		logger.Debug("corpus store", "backend", "json", "path", file.Path())
		return file, nil
	}
}

// openEmbedder returns the injected embedder or the one selected by --embedder.
func (m *Main) openEmbedder(ctx context.Context, cli *CLI, stderr io.Writer) (cdpdocs.Embedder, error) {
	if m.Embedder != nil {
		return m.Embedder, nil
	}

	var embedder cdpdocs.Embedder
	switch ResolveEmbedder(cli.Embedder, cli.OnnxModel, cli.OnnxVocab) {
	case "gemini":
		client, err := gemini.NewClient(ctx, cli.GeminiKey)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: set GEMINI_API_KEY. Get a key at https://aistudio.google.com/apikey")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		embedder = gemini.NewEmbedder(client)
	case "onnx":
		e, err := onnx.NewEmbedder(onnx.Config{ModelPath: cli.OnnxModel, VocabPath: cli.OnnxVocab})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: set CDPDOCS_ONNX_MODEL and CDPDOCS_ONNX_VOCAB to the all-MiniLM-L6-v2 files")
			return nil, fmt.Errorf("failed to load ONNX model: %w", err)
		}
		embedder = e
	default:
		embedder = xxhash.NewEmbedder()
	}
	m.closers = append(m.closers, embedder.Close)
	return embedder, nil
}

// ResolveEmbedder returns the embedder to build for the --embedder value.
// "auto" prefers the pretrained onnx model when both of its files are given.
func ResolveEmbedder(name, onnxModel, onnxVocab string) string {
	if name != "auto" && name != "" {
		return name
	}
	if onnxModel != "" && onnxVocab != "" {
		return "onnx"
	}
	return "hash"
}

// newCrawler wires fetchers, extraction and rate limiting into a Crawler.
func (m *Main) newCrawler(logger *slog.Logger) *crawl.Crawler {
	direct := m.Direct
	if direct == nil {
		direct = cdphttp.NewFetcher()
	}
	rendered := m.Rendered
	if rendered == nil {
		rendered = rod.NewFetcher()
	}
	m.closers = append(m.closers, direct.Close, rendered.Close)

	return &crawl.Crawler{
		Direct:      cdpslog.NewLoggingFetcher(direct, logger),
		Rendered:    cdpslog.NewLoggingFetcher(rendered, logger),
		Extractor:   goquery.NewExtractor(),
		Links:       goquery.NewDocsLinkSelector(),
		RateLimiter: crawl.NewDomainLimiter(rateLimit),
		Logger:      logger,
	}
}
