// Package render converts vdom element trees into markup strings.
//
// Rendering is a single recursive pass:
//
//   - markup elements serialize their props into attributes and wrap the
//     concatenation of their rendered children in open and close tags
//   - function components first receive their rendered children under the
//     "children" prop, then return a new sub-tree which is rendered in turn
//   - children that are strings pass through unchanged, nested lists are
//     flattened, and anything else is dropped (or rejected in strict mode)
//
// Sibling children are rendered concurrently, but the output always keeps
// declaration order. Attribute values are written verbatim unless
// RendererConfig.EscapeAttributes is set.
//
// # Basic Usage
//
//	tree := vdom.Div(vdom.Attrs(vdom.Class("card")), "Hello ", vdom.Strong(nil, "world"))
//	html, err := render.Render(ctx, tree, nil)
//	// <div class="card">Hello <strong>world</strong></div>
//
// The resolver argument is passed untouched to every component, so
// applications can hand components a data source without the renderer
// knowing its shape:
//
//	r := render.NewRenderer(render.RendererConfig{Strict: true})
//	html, err := r.Render(ctx, page, db)
//
// # Errors
//
// Errors returned by components reach the caller of Render unchanged.
// The renderer's own failures are coded internal/errors values:
// R001 for a tag that is neither a name nor a component, R002 and R003
// for strict mode violations, R004 when ctx is done.
//
// # Observability
//
// Every Render call opens a "vrender.render" span and every component
// call a "vrender.component" span on the configured OpenTelemetry
// tracer. Prometheus metrics are recorded when RendererConfig.Metrics
// is set.
package render
