package server

import (
	"bytes"
	"context"
	stderrors "errors"
	"net/http"

	"github.com/vango-dev/vrender/internal/errors"
	"github.com/vango-dev/vrender/pkg/document"
	"github.com/vango-dev/vrender/pkg/render"
)

// handlePage returns the handler for a configured page route.
func (s *Server) handlePage(route string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path, ok := s.cfg.PagePath(route)
		if !ok {
			s.handleNotFound(w, r)
			return
		}

		tree, err := document.LoadFile(path, s.registry)
		if err != nil {
			s.fail(w, r, route, err)
			return
		}

		ctx := r.Context()
		if timeout := s.cfg.RenderTimeout(); timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		var buf bytes.Buffer
		err = s.renderer.RenderPage(ctx, &buf, render.PageData{
			Body:     tree,
			Resolver: s.resolver,
			Title:    s.cfg.Name,
		})
		if err != nil {
			s.fail(w, r, route, err)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
	}
}

// fail logs err and writes an error response. Missing documents are
// 404s, renders that hit the timeout are 504s, everything else is a 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, route string, err error) {
	status := http.StatusInternalServerError
	switch {
	case stderrors.Is(err, errors.New("D104")):
		status = http.StatusNotFound
	case stderrors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}

	s.logger.Error("page failed", "route", route, "status", status, "error", err)

	msg := err.Error()
	var verr *errors.Error
	if stderrors.As(err, &verr) {
		msg = verr.FormatCompact()
	}
	http.Error(w, msg, status)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "404 page not found", http.StatusNotFound)
}
