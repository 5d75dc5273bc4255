package vdom

import (
	"context"
	"reflect"
	"runtime"
	"sort"
	"strings"
)

// TagKind is the tag variant discriminator.
type TagKind uint8

const (
	KindInvalid   TagKind = iota // Neither a tag name nor a component
	KindElement                  // <div>, <button>, etc.
	KindComponent                // Function component
)

// String returns the string representation of the TagKind.
func (k TagKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindComponent:
		return "Component"
	default:
		return "Invalid"
	}
}

// Component is a function component. It receives the element's props
// (with the resolved children under "children") and the resolver value
// passed to the render call, and returns the sub-tree to render in its
// place.
type Component func(ctx context.Context, props Props, resolver any) (*Element, error)

// Tag is either a markup tag name or a Component.
type Tag struct {
	kind TagKind
	name string
	comp Component
	raw  any
}

// Name creates a markup tag.
func Name(name string) Tag {
	return Tag{kind: KindElement, name: name}
}

// Func creates a component tag. A nil component yields an invalid tag.
func Func(c Component) Tag {
	if c == nil {
		return Tag{kind: KindInvalid}
	}
	return Tag{kind: KindComponent, comp: c}
}

// TagOf classifies an arbitrary value as a Tag.
// Strings become markup tags, Component values (or plain functions with
// the Component signature) become component tags, and anything else is
// kept as an invalid tag so the renderer can report it.
func TagOf(v any) Tag {
	switch t := v.(type) {
	case Tag:
		return t
	case string:
		return Name(t)
	case Component:
		return Func(t)
	case func(context.Context, Props, any) (*Element, error):
		return Func(t)
	default:
		return Tag{kind: KindInvalid, raw: v}
	}
}

// Kind returns the tag variant.
func (t Tag) Kind() TagKind { return t.kind }

// Name returns the markup tag name. Empty for component and invalid tags.
func (t Tag) Name() string { return t.name }

// Component returns the component function. Nil unless Kind is KindComponent.
func (t Tag) Component() Component { return t.comp }

// IsZero reports whether the tag is absent: an empty name, or an
// invalid tag built from nil. Children with an absent tag are not
// treated as elements.
func (t Tag) IsZero() bool {
	switch t.kind {
	case KindElement:
		return t.name == ""
	case KindComponent:
		return false
	default:
		return t.raw == nil
	}
}

// Raw returns the value an invalid tag was built from.
func (t Tag) Raw() any { return t.raw }

// String describes the tag for logs and errors.
func (t Tag) String() string {
	switch t.kind {
	case KindElement:
		return t.name
	case KindComponent:
		return ComponentName(t.comp)
	default:
		if t.raw == nil {
			return "<nil>"
		}
		return reflect.TypeOf(t.raw).String()
	}
}

// ComponentName returns a readable name for a component function,
// derived from the runtime symbol (e.g. "components.Markdown").
func ComponentName(c Component) string {
	if c == nil {
		return "<nil>"
	}
	fn := runtime.FuncForPC(reflect.ValueOf(c).Pointer())
	if fn == nil {
		return "component"
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// Element is a tree node.
type Element struct {
	Tag      Tag   // Markup tag or component
	Props    Props // Ordered attributes; may be nil
	Children []any // Children exactly as passed to the builder
}

// Attr represents a single prop.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Props is an ordered props mapping. Iteration order is declaration
// order, which is also the order attributes are serialized in.
type Props []Attr

// ChildrenKey is the reserved prop that carries resolved children into
// a component, and that is never serialized as an attribute.
const ChildrenKey = "children"

// Get returns the value stored under key.
func (p Props) Get(key string) (any, bool) {
	for _, a := range p {
		if a.Key == key {
			return a.Value, true
		}
	}
	return nil, false
}

// GetString returns the value under key when it is a string.
func (p Props) GetString(key string) string {
	v, _ := p.Get(key)
	s, _ := v.(string)
	return s
}

// Has reports whether key is present.
func (p Props) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Len returns the number of props.
func (p Props) Len() int { return len(p) }

// Keys returns the keys in declaration order.
func (p Props) Keys() []string {
	keys := make([]string, len(p))
	for i, a := range p {
		keys[i] = a.Key
	}
	return keys
}

// Clone returns a copy that shares no backing array with p.
func (p Props) Clone() Props {
	if p == nil {
		return nil
	}
	out := make(Props, len(p))
	copy(out, p)
	return out
}

// With returns a new Props with key set to value. An existing key keeps
// its position; a new key is appended. The receiver is never modified.
func (p Props) With(key string, value any) Props {
	out := make(Props, len(p), len(p)+1)
	copy(out, p)
	for i := range out {
		if out[i].Key == key {
			out[i].Value = value
			return out
		}
	}
	return append(out, Attr{Key: key, Value: value})
}

// Without returns a new Props with key removed.
func (p Props) Without(key string) Props {
	out := make(Props, 0, len(p))
	for _, a := range p {
		if a.Key != key {
			out = append(out, a)
		}
	}
	return out
}

// PropsFrom builds Props from a Go map. Keys are sorted, since Go maps
// carry no insertion order.
func PropsFrom(m map[string]any) Props {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	p := make(Props, 0, len(keys))
	for _, k := range keys {
		p = append(p, Attr{Key: k, Value: m[k]})
	}
	return p
}

// Style is an ordered mapping of CSS property names to values, used as
// the value of the "style" prop.
type Style []Attr

// StyleFrom builds a Style from a Go map with keys sorted.
func StyleFrom(m map[string]any) Style {
	return Style(PropsFrom(m))
}
