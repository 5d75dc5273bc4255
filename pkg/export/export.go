package export

import (
	"bytes"
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/vrender/internal/config"
	"github.com/vango-dev/vrender/internal/errors"
	"github.com/vango-dev/vrender/pkg/document"
	"github.com/vango-dev/vrender/pkg/render"
)

// defaultConcurrency bounds how many pages are exported at once.
const defaultConcurrency = 4

// Exporter renders pages and stores them in a Sink.
type Exporter struct {
	// Renderer renders page bodies. Default: a non-strict renderer.
	Renderer *render.Renderer

	// Registry resolves component tags in documents.
	Registry *document.Registry

	// Resolver is passed to every component.
	Resolver any

	// Sink stores the rendered pages. Required.
	Sink Sink

	// Title is the title of every page.
	Title string

	// Timeout bounds each page render. Zero means no timeout.
	Timeout time.Duration

	// Concurrency bounds parallel page exports. Default: 4.
	Concurrency int

	// Logger receives progress messages. Default: slog.Default().
	Logger *slog.Logger
}

// PageResult describes one exported page.
type PageResult struct {
	Route string
	Key   string
	Bytes int
}

// Report summarizes an export. Pages are sorted by route.
type Report struct {
	Pages    []PageResult
	Bytes    int
	Duration time.Duration
}

// Pages returns the configured pages of cfg as route to document path.
func Pages(cfg *config.Config) map[string]string {
	pages := make(map[string]string, len(cfg.Pages))
	for _, route := range cfg.Routes() {
		if path, ok := cfg.PagePath(route); ok {
			pages[route] = path
		}
	}
	return pages
}

// Export renders every page (route to document path) and stores it.
// The first failure cancels the remaining pages; its error is wrapped
// in an X201 error naming the route.
func (e *Exporter) Export(ctx context.Context, pages map[string]string) (Report, error) {
	start := time.Now()

	if e.Sink == nil {
		return Report{}, errors.New("X201").WithDetail("No sink configured.")
	}

	renderer := e.Renderer
	if renderer == nil {
		renderer = render.NewRenderer(render.RendererConfig{})
	}
	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "export")

	routes := make([]string, 0, len(pages))
	for route := range pages {
		routes = append(routes, route)
	}
	sort.Strings(routes)

	results := make([]PageResult, len(routes))
	g, gctx := errgroup.WithContext(ctx)
	limit := e.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}
	g.SetLimit(limit)

	for i, route := range routes {
		g.Go(func() error {
			res, err := e.exportPage(gctx, renderer, route, pages[route])
			if err != nil {
				return errors.New("X201").
					WithDetailf("Page %s (%s) failed.", route, pages[route]).
					Wrap(err)
			}
			logger.Debug("page exported", "route", route, "key", res.Key, "bytes", res.Bytes)
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{Pages: results, Duration: time.Since(start)}
	for _, res := range results {
		report.Bytes += res.Bytes
	}
	logger.Info("export complete", "pages", len(results), "bytes", report.Bytes, "duration", report.Duration)
	return report, nil
}

func (e *Exporter) exportPage(ctx context.Context, renderer *render.Renderer, route, path string) (PageResult, error) {
	key, err := KeyForRoute(route)
	if err != nil {
		return PageResult{}, err
	}

	tree, err := document.LoadFile(path, e.Registry)
	if err != nil {
		return PageResult{}, err
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	var buf bytes.Buffer
	err = renderer.RenderPage(ctx, &buf, render.PageData{
		Body:     tree,
		Resolver: e.Resolver,
		Title:    e.Title,
	})
	if err != nil {
		return PageResult{}, err
	}

	if err := e.Sink.Put(ctx, key, buf.Bytes(), "text/html; charset=utf-8"); err != nil {
		return PageResult{}, err
	}
	return PageResult{Route: route, Key: key, Bytes: buf.Len()}, nil
}
