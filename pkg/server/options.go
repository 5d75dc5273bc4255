package server

import (
	"log/slog"
	"net/http"

	"github.com/vango-dev/vrender/pkg/document"
	"github.com/vango-dev/vrender/pkg/render"
)

// Option configures a Server.
type Option func(*Server)

// WithRenderer sets the renderer. By default one is built from the
// render section of the config.
func WithRenderer(r *render.Renderer) Option {
	return func(s *Server) {
		s.renderer = r
	}
}

// WithRegistry sets the component registry used to decode documents.
// By default the built-in components are registered.
func WithRegistry(reg *document.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// WithResolver sets the resolver value passed to every component.
func WithResolver(resolver any) Option {
	return func(s *Server) {
		s.resolver = resolver
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler sets the handler mounted on the metrics path.
// By default a handler for a private Prometheus registry is used.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metricsHandler = h
	}
}
