package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/marketway"
	"github.com/fwojciec/marketway/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	DB     *sqlite.DB
	Market string

	Lines   marketway.LineService
	History marketway.HistoryService

	Asker       marketway.Asker
	Navigator   marketway.Navigator
	Directory   marketway.Directory
	ImageAsker  marketway.ImageAsker
	VoiceAsker  marketway.VoiceAsker
	Synthesizer marketway.Synthesizer
	Images      marketway.ImageFinder
	ImageDir    string

	// Reload replaces the served catalog with the stored one.
	Reload func(ctx context.Context) error
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB           string        `name:"db" env:"MARKETWAY_DB" help:"SQLite database path (default ~/.marketway/marketway.db)"`
	Market       string        `env:"MARKETWAY_MARKET" default:"Bamenda Main Market" help:"Market name used in answers"`
	Images       string        `env:"MARKETWAY_IMAGES" default:"images" help:"Directory of line pictures"`
	Fallback     string        `env:"MARKETWAY_FALLBACK" enum:"gemini,web,none" default:"web" help:"General answer service for unmatched questions (${enum})"`
	GeminiAPIKey string        `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key for the fallback, images and voice"`
	CountTokens  bool          `env:"MARKETWAY_COUNT_TOKENS" help:"Reject oversized Gemini fallback questions (downloads a tokenizer on first use)"`
	CacheTTL     time.Duration `name:"cache-ttl" env:"MARKETWAY_CACHE_TTL" default:"1h" help:"How long fallback answers and image labels are cached (0 disables answer caching)"`
	FetchTimeout time.Duration `env:"MARKETWAY_FETCH_TIMEOUT" default:"10s" help:"Web fallback request timeout"`
	LogLevel     string        `env:"MARKETWAY_LOG_LEVEL" enum:"debug,info,warn,error" default:"info" help:"Log level (${enum})"`
	LogFormat    string        `env:"MARKETWAY_LOG_FORMAT" enum:"text,json" default:"text" help:"Log format (${enum})"`

	Serve    ServeCmd    `cmd:"" help:"Serve the market assistant over HTTP"`
	Ask      AskCmd      `cmd:"" help:"Ask where to find something"`
	Search   SearchCmd   `cmd:"" help:"List lines selling a product"`
	Line     LineCmd     `cmd:"" help:"Show a line"`
	Navigate NavigateCmd `cmd:"" help:"Print directions to a line"`
	History  HistoryCmd  `cmd:"" help:"Print the market history"`
	Seed     SeedCmd     `cmd:"" help:"Load lines and history from a YAML seed file"`
	List     ListCmd     `cmd:"" help:"List all stored lines"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a stored line"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr  string  `env:"MARKETWAY_ADDR" default:":8000" help:"Listen address"`
	Temp  string  `env:"MARKETWAY_TEMP" help:"Directory for uploaded audio (default system temp)"`
	Rate  float64 `env:"MARKETWAY_RATE" default:"5" help:"Requests per second per client (0 disables limiting)"`
	Burst int     `env:"MARKETWAY_BURST" default:"10" help:"Request burst per client"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question, such as 'where can I buy medicine'"`
	From     string `help:"Line you are standing at (default entrance)"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Product string `arg:"" help:"Product name"`
}

// LineCmd is the "line" subcommand.
type LineCmd struct {
	Name string `arg:"" help:"Line name"`
}

// NavigateCmd is the "navigate" subcommand.
type NavigateCmd struct {
	Line string `arg:"" help:"Destination line"`
	From string `help:"Line you are standing at (default entrance)"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct{}

// SeedCmd is the "seed" subcommand.
type SeedCmd struct {
	File    string `arg:"" type:"existingfile" help:"YAML seed file"`
	Replace bool   `help:"Delete stored lines before loading"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Line name"`
	Force bool   `help:"Confirm deletion"`
}
