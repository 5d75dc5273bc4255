package components

import (
	"bytes"
	"context"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/vango-dev/vrender/internal/errors"
	"github.com/vango-dev/vrender/pkg/vdom"
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)

	// unsafeMarkdown passes raw HTML blocks through.
	unsafeMarkdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
)

// Markdown renders Markdown to a div.
//
// The source is the "source" prop, or the resolved children when that
// prop is absent or null; a source of any other type is an R005 error.
// GitHub Flavored Markdown is enabled. Raw HTML in the
// source is omitted unless the "unsafe" prop is true. The "className"
// prop is copied to the div. The generated HTML is carried in the div's
// children prop, so it is written without further processing.
func Markdown(ctx context.Context, props vdom.Props, resolver any) (*vdom.Element, error) {
	source, _ := props.Get("source")
	if source == nil {
		source, _ = props.Get(vdom.ChildrenKey)
	}
	src, ok := source.(string)
	if !ok && source != nil {
		return nil, errors.New("R005").
			WithDetailf("Markdown needs a string source prop, got %T.", source).
			WithExample("tag: Markdown\nprops: {source: \"# Title\"}")
	}

	md := markdown
	if allow, _ := props.Get("unsafe"); allow == true {
		md = unsafeMarkdown
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return nil, err
	}

	var out vdom.Props
	if class := props.GetString("className"); class != "" {
		out = out.With("className", class)
	}
	out = out.With(vdom.ChildrenKey, buf.String())
	return vdom.Div(out), nil
}
