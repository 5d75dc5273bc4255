// Package middleware provides net/http middleware for the vrender
// preview server.
//
// This package includes:
//   - OpenTelemetry tracing of page requests
//   - Prometheus request metrics
//   - Structured request logging with log/slog
//
// All three follow the func(http.Handler) http.Handler shape and plug
// straight into a chi router:
//
//	r := chi.NewRouter()
//	r.Use(chimw.RequestID)
//	r.Use(middleware.Logger(logger))
//	r.Use(middleware.Tracing(middleware.WithTracerName("docs")))
//	r.Use(middleware.Metrics(m))
//
// Route labels use the chi route pattern ("/blog/*") rather than the
// raw path, so metric cardinality stays bounded.
//
// # Context Propagation
//
// Tracing injects the request span into r.Context(). The renderer starts
// its own spans from that context, so component spans are children of
// the request span.
package middleware
