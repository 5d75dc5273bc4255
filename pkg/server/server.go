package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/vrender/internal/config"
	"github.com/vango-dev/vrender/pkg/components"
	"github.com/vango-dev/vrender/pkg/document"
	"github.com/vango-dev/vrender/pkg/middleware"
	"github.com/vango-dev/vrender/pkg/render"
)

// Server timeouts.
const (
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 2 * time.Minute
	shutdownTimeout   = 10 * time.Second
)

// Server is the preview server.
type Server struct {
	cfg            *config.Config
	renderer       *render.Renderer
	registry       *document.Registry
	resolver       any
	logger         *slog.Logger
	metricsHandler http.Handler
	httpMetrics    *middleware.HTTPMetrics
	router         chi.Router
}

// New creates a server for cfg. A nil cfg uses config.New().
func New(cfg *config.Config, opts ...Option) *Server {
	if cfg == nil {
		cfg = config.New()
	}

	s := &Server{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("component", "server")

	var renderMetrics *render.Metrics
	if cfg.Metrics.Enabled && s.metricsHandler == nil {
		reg := prometheus.NewRegistry()
		renderMetrics = render.NewMetrics(
			render.WithRegistry(reg),
			render.WithNamespace(cfg.Metrics.Namespace),
		)
		s.httpMetrics = middleware.NewHTTPMetrics(
			middleware.WithRegistry(reg),
			middleware.WithNamespace(cfg.Metrics.Namespace),
		)
		s.metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	if s.renderer == nil {
		s.renderer = render.NewRenderer(render.RendererConfig{
			Strict:           cfg.Render.Strict,
			EscapeAttributes: cfg.Render.EscapeAttributes,
			Logger:           s.logger.With("component", "render"),
			Metrics:          renderMetrics,
		})
	}

	if s.registry == nil {
		s.registry = document.NewRegistry()
		components.Register(s.registry)
	}

	s.router = s.routes()
	return s
}

// routes builds the router.
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Tracing(
		middleware.WithRequestFilter(func(r *http.Request) bool {
			return r.URL.Path != "/healthz"
		}),
	))
	r.Use(middleware.Metrics(s.httpMetrics))

	r.Get("/healthz", s.handleHealth)

	if s.cfg.Metrics.Enabled && s.metricsHandler != nil {
		r.Method(http.MethodGet, s.cfg.Metrics.Path, s.metricsHandler)
	}

	for _, route := range s.cfg.Routes() {
		r.Get(route, s.handlePage(route))
	}

	r.NotFound(s.handleNotFound)
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Renderer returns the renderer used for pages.
func (s *Server) Renderer() *render.Renderer {
	return s.renderer
}

// Run listens on the configured address and serves until ctx is
// cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address())
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String(), "pages", len(s.cfg.Pages))
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("shutdown error", "error", err)
		return err
	}

	s.logger.Info("server shutdown complete")
	return nil
}
