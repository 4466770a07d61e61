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
	"github.com/fwojciec/marketway"
	"github.com/fwojciec/marketway/fs"
	"github.com/fwojciec/marketway/gemini"
	"github.com/fwojciec/marketway/gocache"
	"github.com/fwojciec/marketway/goquery"
	mwhttp "github.com/fwojciec/marketway/http"
	"github.com/fwojciec/marketway/resolve"
	mwslog "github.com/fwojciec/marketway/slog"
	"github.com/fwojciec/marketway/sqlite"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	// A missing .env file is fine.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when --db is not given. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	LineService    marketway.LineService
	HistoryService marketway.HistoryService
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
		kong.Name("marketway"),
		kong.Description("Find your way around the market."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'marketway --help' to see available commands")
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

	deps.Logger, err = newLogger(stderr, cli.LogLevel, cli.LogFormat)
	if err != nil {
		return err
	}

	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set MARKETWAY_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.LineService = sqlite.NewLineService(m.DB)
	m.HistoryService = sqlite.NewHistoryService(m.DB)
	deps.DB = m.DB
	deps.Lines = m.LineService
	deps.History = m.HistoryService
	deps.Market = cli.Market

	switch cmd {
	case "seed", "list", "delete":
		return kongCtx.Run(deps)
	}

	if err := m.wireEngine(ctx, cli, cmd, deps); err != nil {
		return err
	}

	return kongCtx.Run(deps)
}

// wireEngine loads the catalog and builds the engine with its collaborators.
func (m *Main) wireEngine(ctx context.Context, cli *CLI, cmd string, deps *Dependencies) error {
	cat, err := marketway.LoadCatalog(ctx, cli.Market, m.LineService, m.HistoryService)
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Run 'marketway seed <file>' to load a market catalog")
		return err
	}
	holder := marketway.NewCatalogHolder(cat)

	deps.Reload = func(ctx context.Context) error {
		cat, err := marketway.LoadCatalog(ctx, cli.Market, m.LineService, m.HistoryService)
		if err != nil {
			return err
		}
		holder.Swap(cat)
		return nil
	}

	images := fs.NewImageDir(cli.Images)
	deps.Images = images
	deps.ImageDir = images.Dir()

	engine := resolve.NewEngine(holder)
	engine.Composer.Images = images
	engine.Composer.ImagePrefix = mwhttp.DefaultImagePrefix

	var client *genai.Client
	if cli.GeminiAPIKey != "" {
		if client, err = gemini.NewClient(ctx, cli.GeminiAPIKey); err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
	}

	fallback, err := newFallback(cli, client, deps.Logger)
	if err != nil {
		return err
	}
	if fallback != nil {
		engine.Composer.Fallback = fallback
	}

	if client != nil && cmd == "serve" {
		engine.Classifier = mwslog.NewLoggingClassifier(
			gocache.WrapClassifier(gemini.NewClassifier(client), cli.CacheTTL), deps.Logger)
		engine.Transcriber = mwslog.NewLoggingTranscriber(gemini.NewTranscriber(client), deps.Logger)
		deps.Synthesizer = mwslog.NewLoggingSynthesizer(gemini.NewSynthesizer(client), deps.Logger)
	}

	deps.Asker = mwslog.NewLoggingAsker(engine, deps.Logger)
	deps.Navigator = engine
	deps.Directory = engine
	deps.ImageAsker = mwslog.NewLoggingImageAsker(engine, deps.Logger)
	deps.VoiceAsker = mwslog.NewLoggingVoiceAsker(engine, deps.Logger)
	return nil
}

// newFallback builds the general answerer selected by --fallback. It returns
// nil for "none".
func newFallback(cli *CLI, client *genai.Client, logger *slog.Logger) (marketway.Answerer, error) {
	var next marketway.Answerer
	switch cli.Fallback {
	case "gemini":
		if client == nil {
			return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		answerer := gemini.NewAnswerer(client, cli.Market)
		if cli.CountTokens {
			counter, err := gemini.NewTokenCounter(gemini.TokenizerModel)
			if err != nil {
				return nil, fmt.Errorf("failed to create token counter: %w", err)
			}
			answerer.Counter = counter
		}
		next = answerer
	case "web":
		fetcher := mwhttp.NewFetcher(mwhttp.WithTimeout(cli.FetchTimeout))
		next = goquery.NewWebAnswerer(mwslog.NewLoggingFetcher(fetcher, logger))
	default:
		return nil, nil
	}

	next = gocache.WrapAnswerer(next, cli.CacheTTL)
	return mwslog.NewLoggingAnswerer(next, cli.Fallback, logger), nil
}

// newLogger returns a slog logger writing to w in the given format.
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "marketway.db"
	}
	dir := filepath.Join(home, ".marketway")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "marketway.db")
}
