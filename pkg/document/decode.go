package document

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vrender/internal/errors"
	"github.com/vango-dev/vrender/pkg/vdom"
)

// inputName is the location file name for documents not read from disk.
const inputName = "<input>"

// Decoding limits. Aliases are expanded in place, so a small document
// can describe a large tree.
const (
	maxDepth = 1000
	maxNodes = 1 << 20
)

// Node mapping fields.
const (
	fieldTag      = "tag"
	fieldProps    = "props"
	fieldChildren = "children"
)

// Decode decodes a YAML or JSON document into an element tree.
// An empty document decodes to a nil tree.
func Decode(data []byte, reg *Registry) (*vdom.Element, error) {
	return decode(inputName, data, reg)
}

// LoadFile reads and decodes the document at path. Errors carry the
// file, line and column of the offending node.
func LoadFile(path string, reg *Registry) (*vdom.Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("D104").
				WithDetail("No document at " + path)
		}
		return nil, errors.New("D101").Wrap(err)
	}
	return decode(path, data, reg)
}

func decode(file string, data []byte, reg *Registry) (*vdom.Element, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.New("D101").
			WithDetail("Failed to parse " + file + ": " + err.Error()).
			WithSuggestion("Check that the document is valid YAML or JSON")
	}

	// Empty input yields a zero node.
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, nil
	}

	d := &decoder{file: file, reg: reg, active: make(map[*yaml.Node]bool)}
	node := d.resolve(root.Content[0])
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, d.fail("D101", node, "The document root must be an element mapping with a tag, got %s.", kindName(node))
	}
	return d.element(node)
}

type decoder struct {
	file string
	reg  *Registry

	// active holds the element and list nodes being decoded, so an alias
	// back to one of them is reported instead of expanded forever.
	active map[*yaml.Node]bool
	depth  int
	nodes  int
}

func (d *decoder) fail(code string, n *yaml.Node, format string, args ...any) *errors.Error {
	return errors.New(code).
		WithDetailf(format, args...).
		WithLocation(d.file, n.Line, n.Column)
}

// resolve follows aliases.
func (d *decoder) resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// deref follows aliases of a child position and rejects an alias that
// refers to a node still being decoded.
func (d *decoder) deref(n *yaml.Node) (*yaml.Node, error) {
	target := d.resolve(n)
	if n.Kind == yaml.AliasNode && d.active[target] {
		return nil, d.fail("D102", n, "The alias *%s refers to a node that contains it.", n.Value).
			WithSuggestion("Remove the alias or point it at a node outside its own anchor")
	}
	return target, nil
}

// enter marks n as being decoded. The returned func undoes it.
func (d *decoder) enter(n *yaml.Node) (func(), error) {
	d.depth++
	d.nodes++
	if d.depth > maxDepth {
		d.depth--
		return nil, d.fail("D102", n, "The document is nested more than %d levels deep.", maxDepth)
	}
	if d.nodes > maxNodes {
		d.depth--
		return nil, d.fail("D102", n, "The document expands to more than %d nodes.", maxNodes).
			WithSuggestion("Check for aliases that are repeated many times")
	}
	d.active[n] = true
	return func() {
		delete(d.active, n)
		d.depth--
	}, nil
}

// element decodes a mapping node with a tag into an element.
func (d *decoder) element(n *yaml.Node) (*vdom.Element, error) {
	leave, err := d.enter(n)
	if err != nil {
		return nil, err
	}
	defer leave()

	var (
		tagNode  *yaml.Node
		props    vdom.Props
		children []any
	)

	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		value, err := d.deref(n.Content[i+1])
		if err != nil {
			return nil, err
		}

		switch key.Value {
		case fieldTag:
			tagNode = value

		case fieldProps:
			p, err := d.props(value)
			if err != nil {
				return nil, err
			}
			props = p

		case fieldChildren:
			c, err := d.children(value)
			if err != nil {
				return nil, err
			}
			children = c

		default:
			return nil, d.fail("D102", key, "Unknown field %q; a node has tag, props and children.", key.Value)
		}
	}

	if tagNode == nil {
		return nil, d.fail("D102", n, "The node has no tag.").
			WithExample("tag: div\nchildren:\n  - Hello")
	}
	if tagNode.Kind != yaml.ScalarNode || tagNode.Value == "" {
		return nil, d.fail("D102", tagNode, "The tag must be a non-empty string, got %s.", kindName(tagNode))
	}

	tag := vdom.Name(tagNode.Value)
	if c, ok := d.reg.Lookup(tagNode.Value); ok {
		tag = vdom.Func(c)
	}

	return vdom.CreateElement(tag, props, children...), nil
}

// children decodes the children field. A single value is treated as a
// one-element list.
func (d *decoder) children(n *yaml.Node) ([]any, error) {
	if n.Kind != yaml.SequenceNode {
		c, err := d.child(n)
		if err != nil {
			return nil, err
		}
		return []any{c}, nil
	}
	return d.sequence(n)
}

func (d *decoder) sequence(n *yaml.Node) ([]any, error) {
	leave, err := d.enter(n)
	if err != nil {
		return nil, err
	}
	defer leave()

	out := make([]any, 0, len(n.Content))
	for _, item := range n.Content {
		target, err := d.deref(item)
		if err != nil {
			return nil, err
		}
		c, err := d.child(target)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// child decodes one child node.
func (d *decoder) child(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return d.scalar(n)
	case yaml.SequenceNode:
		return d.sequence(n)
	case yaml.MappingNode:
		return d.element(n)
	default:
		return nil, d.fail("D102", n, "Unsupported child of kind %s.", kindName(n))
	}
}

// scalar decodes a scalar to its Go value; strings stay strings.
func (d *decoder) scalar(n *yaml.Node) (any, error) {
	if n.Tag == "!!str" {
		return n.Value, nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, d.fail("D102", n, "Cannot decode %q: %v", n.Value, err)
	}
	return v, nil
}

// props decodes the props mapping in document order.
func (d *decoder) props(n *yaml.Node) (vdom.Props, error) {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, d.fail("D103", n, "props must be a mapping, got %s.", kindName(n))
	}

	props := make(vdom.Props, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], d.resolve(n.Content[i+1])
		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return nil, d.fail("D103", key, "Prop names must be non-empty strings.")
		}

		var (
			v   any
			err error
		)
		if key.Value == "style" && value.Kind == yaml.MappingNode {
			v, err = d.style(value)
		} else {
			v, err = d.value(value)
		}
		if err != nil {
			return nil, err
		}
		props = props.With(key.Value, v)
	}
	return props, nil
}

// style decodes a style mapping into ordered declarations.
func (d *decoder) style(n *yaml.Node) (vdom.Style, error) {
	style := make(vdom.Style, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], d.resolve(n.Content[i+1])
		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return nil, d.fail("D103", key, "Style properties must be non-empty strings.")
		}
		v, err := d.value(value)
		if err != nil {
			return nil, err
		}
		style = append(style, vdom.Attr{Key: key.Value, Value: v})
	}
	return style, nil
}

// value decodes a prop value. Strings stay strings, other nodes decode
// to their generic Go form.
func (d *decoder) value(n *yaml.Node) (any, error) {
	if n.Kind == yaml.ScalarNode {
		return d.scalar(n)
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, d.fail("D103", n, "Cannot decode prop value: %v", err)
	}
	return v, nil
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.DocumentNode:
		return "a document"
	case yaml.SequenceNode:
		return "a list"
	case yaml.MappingNode:
		return "a mapping"
	case yaml.AliasNode:
		return "an alias"
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return "null"
		}
		return "the scalar " + n.Value
	default:
		return "an empty node"
	}
}
