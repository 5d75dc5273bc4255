package render

import (
	"context"
	"io"
	"strings"

	"github.com/vango-dev/vrender/pkg/vdom"
)

// PageData contains all data needed to render a complete HTML document.
type PageData struct {
	// Body is the root element rendered inside <body>.
	Body *vdom.Element

	// Resolver is passed to every component in Body.
	Resolver any

	// Title is the page title. It is HTML-escaped.
	Title string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string

	// Meta contains meta tags for the page.
	Meta []MetaTag

	// StyleSheets contains paths to external stylesheets.
	StyleSheets []string
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name     string // name attribute
	Content  string // content attribute
	Property string // property attribute (for OpenGraph)
}

// RenderPage renders a complete HTML document to w. The body is fully
// rendered before anything is written, so a failed render writes nothing.
func (r *Renderer) RenderPage(ctx context.Context, w io.Writer, page PageData) error {
	body, err := r.Render(ctx, page.Body, page.Resolver)
	if err != nil {
		return err
	}

	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	var b strings.Builder
	b.Grow(len(body) + 256)
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString(`<html lang="`)
	b.WriteString(escapeAttr(lang))
	b.WriteString(`">`)
	b.WriteString(`<head><meta charset="utf-8">`)
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)

	if page.Title != "" {
		b.WriteString("<title>")
		b.WriteString(escapeHTML(page.Title))
		b.WriteString("</title>")
	}

	for _, meta := range page.Meta {
		b.WriteString("<meta")
		if meta.Name != "" {
			b.WriteString(` name="` + escapeAttr(meta.Name) + `"`)
		}
		if meta.Property != "" {
			b.WriteString(` property="` + escapeAttr(meta.Property) + `"`)
		}
		b.WriteString(` content="` + escapeAttr(meta.Content) + `">`)
	}

	for _, href := range page.StyleSheets {
		b.WriteString(`<link rel="stylesheet" href="` + escapeAttr(href) + `">`)
	}

	b.WriteString("</head><body>")
	b.WriteString(body)
	b.WriteString("</body></html>\n")

	_, err = io.WriteString(w, b.String())
	return err
}
