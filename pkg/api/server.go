package api

import (
	"context"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gravitymap/pkg/errors"
	"github.com/matzehuels/gravitymap/pkg/pipeline"
)

const (
	// DefaultMaxBodyBytes bounds request bodies.
	DefaultMaxBodyBytes = 1 << 20

	// DefaultShutdownTimeout is how long Run waits for in-flight requests.
	DefaultShutdownTimeout = 10 * time.Second
)

// Config configures a Server. Zero values select defaults.
type Config struct {
	// Logger receives request logs. Nil discards them.
	Logger *log.Logger

	// Metrics, when set, is mounted at /metrics.
	Metrics http.Handler

	// MaxBodyBytes bounds request bodies (default DefaultMaxBodyBytes).
	MaxBodyBytes int64

	// MaxNodes bounds the nodes of a single layout (default pipeline.DefaultMaxNodes).
	MaxNodes int

	// RequestTimeout, when positive, sets a deadline on every request context.
	RequestTimeout time.Duration

	// ReadTimeout and WriteTimeout configure the http.Server built by Run.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server is the HTTP front end for a pipeline.Runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	cfg    Config
	router chi.Router
}

// New builds a Server around runner.
func New(runner *pipeline.Runner, cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.MaxNodes <= 0 {
		cfg.MaxNodes = pipeline.DefaultMaxNodes
	}
	s := &Server{runner: runner, logger: cfg.Logger, cfg: cfg}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(s.recoverer)
	if s.cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.cfg.RequestTimeout))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found", Code: errors.ErrCodeNotFound})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed", Code: errors.ErrCodeInvalidInput})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Group(func(r chi.Router) {
			r.Use(s.limitBody)
			r.Post("/map-layout", s.handleMatchLayout)
			r.Post("/gravity-layout", s.handleMatchLayout)
			r.Post("/layout", s.handleLayout)
		})
	})

	if s.cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.cfg.Metrics)
	}
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", DefaultShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
