// Package http serves the market assistant over HTTP and fetches web pages
// for the web-search fallback.
package http

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/marketway"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server defaults.
const (
	DefaultRequestTimeout  = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxUploadBytes  = 10 << 20
	DefaultImagePrefix     = "/images/"
)

// TempFiles stores uploads for collaborators that read from disk.
type TempFiles interface {
	// Save copies r to a new file and returns its path. The returned
	// cleanup removes the file.
	Save(r io.Reader, ext string) (string, func(), error)
}

// Server is the market assistant's HTTP server.
type Server struct {
	ln     net.Listener
	server *http.Server

	// Addr is the bind address, such as ":8000".
	Addr string

	Logger          *slog.Logger
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	MaxUploadBytes  int64

	// RateLimit is requests per second per client; zero disables limiting.
	RateLimit float64
	RateBurst int

	// Services.
	Asker       marketway.Asker
	ImageAsker  marketway.ImageAsker
	VoiceAsker  marketway.VoiceAsker
	Navigator   marketway.Navigator
	Directory   marketway.Directory
	Synthesizer marketway.Synthesizer
	Images      marketway.ImageFinder
	Temp        TempFiles

	// ImageDir is served under ImagePrefix when set.
	ImageDir    string
	ImagePrefix string
}

// NewServer returns a Server with default settings.
func NewServer() *Server {
	return &Server{
		server:          &http.Server{ReadHeaderTimeout: 10 * time.Second},
		Logger:          slog.New(slog.DiscardHandler),
		RequestTimeout:  DefaultRequestTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
		MaxUploadBytes:  DefaultMaxUploadBytes,
		ImagePrefix:     DefaultImagePrefix,
	}
}

// Open binds Addr and starts serving in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	s.server.Handler = s.Handler()

	go func() {
		if err := s.server.Serve(s.ln); err != nil && err != http.ErrServerClosed {
			s.Logger.Error("http server stopped", "err", err)
		}
	}()
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Handler returns the router with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(corsOptions))
	if s.RateLimit > 0 {
		r.Use(s.limitRequests(NewClientLimiter(s.RateLimit, s.RateBurst)))
	}
	r.Use(middleware.Timeout(s.RequestTimeout))

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)

	r.Post("/ask", s.handleAsk)
	r.Get("/product/search", s.handleSearch)
	r.Get("/line/info/{name}", s.handleLineInfo)
	r.Get("/navigate", s.handleNavigate)
	r.Get("/history", s.handleHistory)
	r.Post("/voice/query", s.handleVoiceQuery)
	r.Post("/image/identify", s.handleImageIdentify)

	if s.ImageDir != "" {
		prefix := s.imagePrefix()
		r.Handle(prefix+"*", http.StripPrefix(prefix, http.FileServer(http.Dir(s.ImageDir))))
	}

	return r
}

func (s *Server) imagePrefix() string {
	if s.ImagePrefix == "" {
		return DefaultImagePrefix
	}
	return s.ImagePrefix
}
