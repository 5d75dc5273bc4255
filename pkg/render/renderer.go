package render

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vrender/internal/errors"
	"github.com/vango-dev/vrender/pkg/vdom"
)

// Default tracer name for renderer spans.
const defaultTracerName = "vrender"

// RendererConfig configures the renderer.
type RendererConfig struct {
	// Strict rejects children that are not strings, elements or lists
	// (nil is still skipped), and markup elements that carry both a
	// children prop and declared children. Off by default, in which case
	// such values are silently dropped or overridden.
	Strict bool

	// EscapeAttributes HTML-escapes attribute values. Off by default:
	// values are written verbatim.
	EscapeAttributes bool

	// Logger receives render diagnostics. If nil, slog.Default() is used.
	Logger *slog.Logger

	// Tracer is used for render and component spans.
	// If nil, otel.Tracer("vrender") from the global provider is used.
	Tracer trace.Tracer

	// Metrics records Prometheus metrics. Nil disables metrics.
	Metrics *Metrics
}

// Renderer renders element trees. It keeps no state between calls and
// is safe for concurrent use.
type Renderer struct {
	config RendererConfig
	tracer trace.Tracer
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	tracer := config.Tracer
	if tracer == nil {
		tracer = otel.Tracer(defaultTracerName)
	}
	return &Renderer{
		config: config,
		tracer: tracer,
	}
}

// Config returns the renderer configuration.
func (r *Renderer) Config() RendererConfig {
	return r.config
}

func (r *Renderer) logger() *slog.Logger {
	if r.config.Logger != nil {
		return r.config.Logger
	}
	return slog.Default()
}

var defaultRenderer = NewRenderer(RendererConfig{})

// Render renders tree with a default, non-strict renderer.
func Render(ctx context.Context, tree *vdom.Element, resolver any) (string, error) {
	return defaultRenderer.Render(ctx, tree, resolver)
}

// Render renders tree to markup. resolver is passed unchanged to every
// component in the tree. A nil tree renders as the empty string.
// Errors returned by components are returned as-is.
func (r *Renderer) Render(ctx context.Context, tree *vdom.Element, resolver any) (string, error) {
	start := time.Now()

	ctx, span := r.tracer.Start(ctx, "vrender.render",
		trace.WithAttributes(
			attribute.Bool("vrender.strict", r.config.Strict),
		),
	)
	defer span.End()

	out, err := r.render(ctx, tree, resolver)
	elapsed := time.Since(start)
	r.config.Metrics.observeRender(elapsed, len(out), err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.logger().Warn("render failed", "error", err, "duration", elapsed)
		return "", err
	}

	span.SetAttributes(attribute.Int("vrender.bytes", len(out)))
	r.logger().Debug("render complete", "bytes", len(out), "duration", elapsed)
	return out, nil
}

// render dispatches on the tag variant.
func (r *Renderer) render(ctx context.Context, tree *vdom.Element, resolver any) (string, error) {
	if tree == nil {
		return "", nil
	}

	switch tree.Tag.Kind() {
	case vdom.KindElement:
		return r.renderElement(ctx, tree, resolver)
	case vdom.KindComponent:
		return r.renderComponent(ctx, tree, resolver)
	default:
		return "", errors.New("R001").
			WithDetailf("Got a tag of type %s; a tag must be a string or a vdom.Component.", tree.Tag)
	}
}

// renderElement renders a markup element with its attributes and children.
func (r *Renderer) renderElement(ctx context.Context, node *vdom.Element, resolver any) (string, error) {
	tag := node.Tag.Name()
	attrs, override := serializeProps(node.Props, r.config.EscapeAttributes)

	replacement, replaced := childrenOverride(override)
	if r.config.Strict && replaced && len(node.Children) > 0 {
		return "", errors.New("R003").
			WithDetailf("<%s> has a children prop and %d declared children.", tag, len(node.Children))
	}

	inner, err := r.ResolveChildren(ctx, node.Children, resolver)
	if err != nil {
		return "", err
	}
	if replaced {
		inner = replacement
	}

	var b strings.Builder
	b.Grow(2*len(tag) + len(attrs) + len(inner) + 6)
	b.WriteByte('<')
	b.WriteString(tag)
	if attrs != "" {
		b.WriteByte(' ')
		b.WriteString(attrs)
	}
	b.WriteByte('>')
	b.WriteString(inner)
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteByte('>')
	return b.String(), nil
}

// renderComponent resolves the element's children, calls the component
// with them under the children prop and renders what it returns.
func (r *Renderer) renderComponent(ctx context.Context, node *vdom.Element, resolver any) (string, error) {
	children, err := r.ResolveChildren(ctx, node.Children, resolver)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", errors.New("R004").Wrap(err)
	}

	comp := node.Tag.Component()
	props := node.Props.With(vdom.ChildrenKey, children)
	name := vdom.ComponentName(comp)

	callCtx, span := r.tracer.Start(ctx, "vrender.component",
		trace.WithAttributes(attribute.String("vrender.component", name)),
	)
	sub, err := comp(callCtx, props, resolver)
	r.config.Metrics.observeComponent(err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()
		r.logger().Debug("component failed", "component", name, "error", err)
		return "", err
	}
	span.End()

	return r.render(ctx, sub, resolver)
}
