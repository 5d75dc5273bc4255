// Package vdom provides the element tree that vrender turns into markup.
//
// An Element is a plain record of a tag, an ordered props list and the
// children it was built with. The tree is described once, rendered in a
// single pass by the render package and then discarded; nothing in this
// package interprets children or validates props.
//
// # Core Types
//
// Element is the tree node. Tag is an explicit variant that is either a
// markup tag name or a function Component. Props is an ordered list of
// Attr values, so attributes serialize in the order they were declared.
//
// # Element API
//
// Elements are created with CreateElement (or its short alias H) or with
// the per-tag factory functions:
//
//	Div(Attrs(Class("card"), ID("main")),
//	    H1(nil, "Title"),
//	    P(nil, "Content"),
//	)
//
// # Components
//
// A Component is a function of (ctx, props, resolver) that returns a new
// sub-tree. Before it is called the renderer resolves the element's
// children to a markup string and passes it under the "children" prop:
//
//	card := func(ctx context.Context, props Props, resolver any) (*Element, error) {
//	    body, _ := props.Get("children")
//	    return Div(Attrs(Class("card")), body), nil
//	}
//	tree := H(card, nil, "inside")
package vdom
