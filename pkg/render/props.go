package render

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/vango-dev/vrender/pkg/vdom"
)

// SerializeProps converts props into an attribute string and returns the
// raw value of the "children" prop, if any.
//
// className is written as class, style accepts a CSS string or an
// ordered set of declarations, and the children prop is never written.
// Attributes are separated by a single space, in props order.
func SerializeProps(props vdom.Props) (attrs string, children any) {
	return serializeProps(props, false)
}

func serializeProps(props vdom.Props, escape bool) (string, any) {
	if len(props) == 0 {
		return "", nil
	}

	var children any
	parts := make([]string, 0, len(props))

	for _, a := range props {
		if a.IsEmpty() {
			continue
		}

		switch a.Key {
		case vdom.ChildrenKey:
			children = a.Value

		case "className":
			parts = append(parts, formatAttr("class", attrToString(a.Value), escape))

		case "style":
			if css, ok := styleToString(a.Value); ok {
				parts = append(parts, formatAttr("style", css, escape))
			}

		default:
			parts = append(parts, formatAttr(a.Key, attrToString(a.Value), escape))
		}
	}

	return strings.Join(parts, " "), children
}

func formatAttr(key, value string, escape bool) string {
	if escape {
		value = escapeAttr(value)
	}
	return key + `="` + value + `"`
}

// styleToString renders a style prop. The second result is false for
// values that produce no attribute at all.
func styleToString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case vdom.Style:
		return declarations(v), true
	case vdom.Props:
		return declarations(v), true
	case []vdom.Attr:
		return declarations(v), true
	case map[string]any:
		return declarations(vdom.PropsFrom(v)), true
	case map[string]string:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var b strings.Builder
		for _, k := range keys {
			b.WriteString(k)
			b.WriteByte(':')
			b.WriteString(v[k])
			b.WriteByte(';')
		}
		return b.String(), true
	default:
		return "", false
	}
}

func declarations[S ~[]vdom.Attr](decls S) string {
	var b strings.Builder
	for _, d := range decls {
		b.WriteString(d.Key)
		b.WriteByte(':')
		b.WriteString(attrToString(d.Value))
		b.WriteByte(';')
	}
	return b.String()
}

// attrToString converts an attribute value to a string.
func attrToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// childrenOverride reports whether a children prop replaces the rendered
// children of a markup element. Empty strings, false, zero or NaN numbers
// of any width and nil leave the rendered children in place. Slices and
// arrays are written as their elements joined with commas.
func childrenOverride(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, v != ""
	case bool:
		if !v {
			return "", false
		}
		return "true", true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if rv.IsZero() {
			return "", false
		}
	case reflect.Float32, reflect.Float64:
		if f := rv.Float(); f == 0 || math.IsNaN(f) {
			return "", false
		}
	case reflect.Slice, reflect.Array:
		if _, ok := value.(fmt.Stringer); !ok {
			return joinList(rv), true
		}
	}
	return attrToString(value), true
}

// joinList writes list elements separated by commas. Nil elements are
// written as empty strings.
func joinList(rv reflect.Value) string {
	parts := make([]string, rv.Len())
	for i := range parts {
		elem := rv.Index(i)
		if elem.Kind() == reflect.Interface && elem.IsNil() {
			continue
		}
		parts[i] = attrToString(elem.Interface())
	}
	return strings.Join(parts, ",")
}
