package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/embedded"
	"go.opentelemetry.io/otel/trace/noop"
)

// recordingProvider records started span names and hands out noop spans.
type recordingProvider struct {
	embedded.TracerProvider

	mu    sync.Mutex
	names []string
	attrs []attribute.KeyValue
}

func (p *recordingProvider) Tracer(name string, opts ...trace.TracerOption) trace.Tracer {
	return &recordingTracer{p: p}
}

type recordingTracer struct {
	embedded.Tracer
	p *recordingProvider
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	t.p.mu.Lock()
	t.p.names = append(t.p.names, name)
	t.p.attrs = append(t.p.attrs, cfg.Attributes()...)
	t.p.mu.Unlock()
	return noop.NewTracerProvider().Tracer("test").Start(ctx, name, opts...)
}

func newRouter(mw ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(mw...)
	r.Get("/pages/{slug}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("page " + chi.URLParam(r, "slug")))
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	return r
}

func serve(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestTracing(t *testing.T) {
	tp := &recordingProvider{}
	r := newRouter(Tracing(
		WithTracerProvider(tp),
		WithRequestFilter(func(r *http.Request) bool { return r.URL.Path != "/boom" }),
		WithAttributeExtractor(func(*http.Request) []attribute.KeyValue {
			return []attribute.KeyValue{attribute.String("test.attr", "ok")}
		}),
	))

	if rec := serve(r, "/pages/intro"); rec.Body.String() != "page intro" {
		t.Fatalf("body = %q", rec.Body.String())
	}
	serve(r, "/boom")

	if len(tp.names) != 1 || tp.names[0] != "GET /pages/intro" {
		t.Errorf("spans = %v, want [GET /pages/intro]", tp.names)
	}

	var sawCustom, sawRequestID bool
	for _, kv := range tp.attrs {
		switch kv.Key {
		case "test.attr":
			sawCustom = kv.Value.AsString() == "ok"
		case "vrender.request_id":
			sawRequestID = kv.Value.AsString() != ""
		}
	}
	if !sawCustom {
		t.Error("custom attribute missing")
	}
	if !sawRequestID {
		t.Error("request id attribute missing")
	}
}

func TestTracingPropagatesSpan(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Tracing(WithTracerProvider(&recordingProvider{})))

	var got trace.Span
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		got = trace.SpanFromContext(r.Context())
	})
	serve(r, "/")

	if got == nil {
		t.Fatal("handler should see a span in its context")
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(WithRegistry(reg), WithNamespace("test"))
	r := newRouter(Metrics(m))

	serve(r, "/pages/a")
	serve(r, "/pages/b")
	serve(r, "/boom")
	serve(r, "/missing")

	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("/pages/{slug}", "GET", "200")); got != 2 {
		t.Errorf("page requests = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("/boom", "GET", "500")); got != 1 {
		t.Errorf("failed requests = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.responseBytes.WithLabelValues("/pages/{slug}")); got != float64(len("page a")+len("page b")) {
		t.Errorf("response bytes = %v", got)
	}
	if got := testutil.ToFloat64(m.inFlight); got != 0 {
		t.Errorf("in flight = %v, want 0", got)
	}

	// Raw paths never become labels.
	if n, err := testutil.GatherAndCount(reg, "test_http_requests_total"); err != nil || n != 3 {
		t.Errorf("request series = %d (%v), want 3", n, err)
	}
}

func TestMetricsNil(t *testing.T) {
	r := newRouter(Metrics(nil))
	if rec := serve(r, "/pages/x"); rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := newRouter(Logger(logger))

	serve(r, "/pages/intro")
	serve(r, "/boom")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("log lines = %d, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "level=INFO") || !strings.Contains(lines[0], "route=/pages/{slug}") || !strings.Contains(lines[0], "status=200") {
		t.Errorf("unexpected page log line: %s", lines[0])
	}
	if !strings.Contains(lines[1], "level=ERROR") || !strings.Contains(lines[1], "status=500") {
		t.Errorf("unexpected error log line: %s", lines[1])
	}
	if strings.Contains(lines[0], `request_id=""`) {
		t.Errorf("request id should be logged: %s", lines[0])
	}
}

func TestStatusClass(t *testing.T) {
	tests := map[int]string{
		101: "1xx",
		200: "2xx",
		304: "3xx",
		404: "4xx",
		503: "5xx",
	}
	for status, want := range tests {
		if got := statusClass(status); got != want {
			t.Errorf("statusClass(%d) = %q, want %q", status, got, want)
		}
	}
}
