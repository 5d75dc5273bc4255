package components

import (
	"context"

	"github.com/vango-dev/vrender/internal/errors"
	"github.com/vango-dev/vrender/pkg/document"
	"github.com/vango-dev/vrender/pkg/vdom"
)

// FragmentSource is implemented by resolvers that can supply named
// fragments to Include.
type FragmentSource interface {
	Fragment(ctx context.Context, name string) (*vdom.Element, error)
}

// Include renders the fragment named by the "name" prop, fetched from
// the resolver. It renders nothing when the resolver is not a
// FragmentSource. Errors from the source are returned unchanged.
func Include(ctx context.Context, props vdom.Props, resolver any) (*vdom.Element, error) {
	name := props.GetString("name")
	if name == "" {
		return nil, errors.New("R005").
			WithDetail("Include needs a non-empty name prop.").
			WithExample("tag: Include\nprops: {name: footer}")
	}

	src, ok := resolver.(FragmentSource)
	if !ok {
		return nil, nil
	}
	return src.Fragment(ctx, name)
}

// Fragments is a FragmentSource backed by a map.
type Fragments map[string]*vdom.Element

// Fragment returns the fragment registered under name.
func (f Fragments) Fragment(ctx context.Context, name string) (*vdom.Element, error) {
	el, ok := f[name]
	if !ok {
		return nil, errors.New("R005").
			WithDetailf("No fragment named %q.", name)
	}
	return el, nil
}

// Register installs the built-in components in reg under their names.
func Register(reg *document.Registry) {
	reg.Register("Markdown", Markdown)
	reg.Register("Include", Include)
}
