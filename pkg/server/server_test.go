package server

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/vrender/internal/config"
	"github.com/vango-dev/vrender/pkg/components"
	"github.com/vango-dev/vrender/pkg/document"
	"github.com/vango-dev/vrender/pkg/vdom"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// newSite writes documents into a temp dir and returns a config rooted
// there.
func newSite(t *testing.T, pages map[string]string, docs map[string]string) *config.Config {
	t.Helper()
	dir := t.TempDir()

	for name, src := range docs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := config.New()
	cfg.Name = "Test Site"
	for route, file := range pages {
		cfg.Pages[route] = file
	}
	if err := cfg.SaveTo(filepath.Join(dir, config.ConfigFileName)); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServePage(t *testing.T) {
	cfg := newSite(t,
		map[string]string{"/": "index.yaml", "/about": "about.yaml"},
		map[string]string{
			"index.yaml": "tag: main\nprops: {className: home}\nchildren: [Welcome]\n",
			"about.yaml": "tag: Markdown\nchildren: [\"# About\"]\n",
		},
	)
	srv := New(cfg, WithLogger(discard))

	rec := get(t, srv, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "<!DOCTYPE html>") {
		t.Errorf("body should be a full document: %q", body)
	}
	if !strings.Contains(body, "<title>Test Site</title>") {
		t.Errorf("title missing: %q", body)
	}
	if !strings.Contains(body, `<body><main class="home">Welcome</main></body>`) {
		t.Errorf("body missing page content: %q", body)
	}

	rec = get(t, srv, "/about")
	if !strings.Contains(rec.Body.String(), `<h1 id="about">About</h1>`) {
		t.Errorf("markdown page not rendered: %q", rec.Body.String())
	}
}

func TestServeReloadsDocuments(t *testing.T) {
	cfg := newSite(t,
		map[string]string{"/": "index.yaml"},
		map[string]string{"index.yaml": "tag: p\nchildren: [one]\n"},
	)
	srv := New(cfg, WithLogger(discard))

	if body := get(t, srv, "/").Body.String(); !strings.Contains(body, "<p>one</p>") {
		t.Fatalf("body = %q", body)
	}

	path, _ := cfg.PagePath("/")
	if err := os.WriteFile(path, []byte("tag: p\nchildren: [two]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if body := get(t, srv, "/").Body.String(); !strings.Contains(body, "<p>two</p>") {
		t.Errorf("edited document not picked up: %q", body)
	}
}

func TestServeErrors(t *testing.T) {
	cfg := newSite(t,
		map[string]string{"/bad": "bad.yaml", "/gone": "gone.yaml"},
		map[string]string{"bad.yaml": "tag: div\nchildren:\n  - oops: 1\n"},
	)
	srv := New(cfg, WithLogger(discard))

	tests := []struct {
		name     string
		path     string
		status   int
		contains string
	}{
		{"unknown route", "/nowhere", http.StatusNotFound, "404"},
		{"missing document", "/gone", http.StatusNotFound, "D104"},
		{"invalid document", "/bad", http.StatusInternalServerError, "bad.yaml:3:5: D102"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, srv, tt.path)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("body = %q, want it to contain %q", rec.Body.String(), tt.contains)
			}
		})
	}
}

func TestServeComponentError(t *testing.T) {
	reg := document.NewRegistry()
	reg.Register("Broken", func(ctx context.Context, props vdom.Props, resolver any) (*vdom.Element, error) {
		return nil, io.ErrUnexpectedEOF
	})
	cfg := newSite(t,
		map[string]string{"/": "index.yaml"},
		map[string]string{"index.yaml": "tag: Broken\n"},
	)
	srv := New(cfg, WithLogger(discard), WithRegistry(reg))

	rec := get(t, srv, "/")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), io.ErrUnexpectedEOF.Error()) {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestServeRenderTimeout(t *testing.T) {
	reg := document.NewRegistry()
	reg.Register("Slow", func(ctx context.Context, props vdom.Props, resolver any) (*vdom.Element, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	cfg := newSite(t,
		map[string]string{"/": "index.yaml"},
		map[string]string{"index.yaml": "tag: div\nchildren: [{tag: Slow}]\n"},
	)
	cfg.Render.Timeout = "20ms"
	srv := New(cfg, WithLogger(discard), WithRegistry(reg))

	rec := get(t, srv, "/")
	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want 504", rec.Code)
	}
}

func TestServeResolver(t *testing.T) {
	cfg := newSite(t,
		map[string]string{"/": "index.yaml"},
		map[string]string{"index.yaml": "tag: div\nchildren:\n  - tag: Include\n    props: {name: nav}\n"},
	)
	srv := New(cfg,
		WithLogger(discard),
		WithResolver(components.Fragments{"nav": vdom.Nav(nil, "menu")}),
	)

	if body := get(t, srv, "/").Body.String(); !strings.Contains(body, "<div><nav>menu</nav></div>") {
		t.Errorf("fragment not included: %q", body)
	}
}

func TestHealthz(t *testing.T) {
	srv := New(config.New(), WithLogger(discard))

	rec := get(t, srv, "/healthz")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok\n" {
		t.Errorf("healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	cfg := newSite(t,
		map[string]string{"/": "index.yaml"},
		map[string]string{"index.yaml": "tag: p\nchildren: [x]\n"},
	)
	srv := New(cfg, WithLogger(discard))

	get(t, srv, "/")

	rec := get(t, srv, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, name := range []string{
		"vrender_renders_total",
		"vrender_render_duration_seconds",
		"vrender_http_requests_total",
	} {
		if !strings.Contains(body, name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}

func TestMetricsDisabled(t *testing.T) {
	cfg := config.New()
	cfg.Metrics.Enabled = false
	srv := New(cfg, WithLogger(discard))

	if rec := get(t, srv, "/metrics"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestMetricsHandlerOption(t *testing.T) {
	custom := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("custom"))
	})
	srv := New(config.New(), WithLogger(discard), WithMetricsHandler(custom))

	if body := get(t, srv, "/metrics").Body.String(); body != "custom" {
		t.Errorf("body = %q, want custom", body)
	}
}

func TestServeShutdown(t *testing.T) {
	cfg := newSite(t,
		map[string]string{"/": "index.yaml"},
		map[string]string{"index.yaml": "tag: p\nchildren: [live]\n"},
	)
	srv := New(cfg, WithLogger(discard))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "<p>live</p>") {
		t.Errorf("body = %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
