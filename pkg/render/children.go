package render

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/vrender/internal/errors"
	"github.com/vango-dev/vrender/pkg/vdom"
)

// ResolveChildren renders a list of children and concatenates the
// results in declaration order.
//
// Strings are used as-is, elements are rendered, and nested lists are
// resolved recursively into a single unit. Every element and nested list
// is started in its own goroutine before any result is awaited; results
// are joined by index, never by completion order. Other values are
// dropped, or rejected when the renderer is strict. The first error
// cancels the remaining siblings and is returned unchanged.
func (r *Renderer) ResolveChildren(ctx context.Context, children []any, resolver any) (string, error) {
	if len(children) == 0 {
		return "", nil
	}

	parts := make([]string, len(children))
	g, gctx := errgroup.WithContext(ctx)

	for i, child := range children {
		switch c := child.(type) {
		case string:
			parts[i] = c

		case []string:
			parts[i] = strings.Join(c, "")

		case *vdom.Element:
			if c == nil || c.Tag.IsZero() {
				r.dropChild(g, child)
				continue
			}
			g.Go(func() error {
				s, err := r.render(gctx, c, resolver)
				parts[i] = s
				return err
			})

		case []any:
			g.Go(func() error {
				s, err := r.ResolveChildren(gctx, c, resolver)
				parts[i] = s
				return err
			})

		case []*vdom.Element:
			nested := make([]any, len(c))
			for j, el := range c {
				nested[j] = el
			}
			g.Go(func() error {
				s, err := r.ResolveChildren(gctx, nested, resolver)
				parts[i] = s
				return err
			})

		default:
			r.dropChild(g, child)
		}
	}

	if err := g.Wait(); err != nil {
		return "", err
	}
	return strings.Join(parts, ""), nil
}

// dropChild records a child that contributes nothing to the output.
// In strict mode anything other than nil fails the group, which cancels
// siblings that are already rendering.
func (r *Renderer) dropChild(g *errgroup.Group, child any) {
	r.config.Metrics.observeDropped()
	if !r.config.Strict || isNil(child) {
		return
	}
	err := errors.New("R002").
		WithDetailf("Got a child of type %T (%v); children must be strings, *vdom.Element values or lists of them.", child, child)
	g.Go(func() error { return err })
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	if el, ok := v.(*vdom.Element); ok {
		return el == nil
	}
	return false
}
