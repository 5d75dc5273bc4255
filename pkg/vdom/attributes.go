package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Attrs collects attributes into Props. Empty attributes are skipped and
// a repeated key replaces the earlier value in its original position.
func Attrs(attrs ...Attr) Props {
	p := make(Props, 0, len(attrs))
	for _, a := range attrs {
		if a.IsEmpty() {
			continue
		}
		p = p.With(a.Key, a.Value)
	}
	return p
}

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the className prop, joining multiple classes with spaces.
// It serializes as the class attribute.
func Class(classes ...string) Attr { return attr("className", strings.Join(classes, " ")) }

// StyleAttr sets the style prop from a raw CSS string.
func StyleAttr(style string) Attr { return attr("style", style) }

// Styles sets the style prop from ordered CSS declarations.
// Example: Styles(Attr{"color", "red"}, Attr{"margin", "0"}) → style="color:red;margin:0;"
func Styles(decls ...Attr) Attr { return attr("style", Style(decls)) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Aria creates an aria-* attribute.
func Aria(key string, value any) Attr { return attr("aria-"+key, value) }

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// TitleAttr sets the title attribute (named to avoid conflict with Title element).
func TitleAttr(title string) Attr { return attr("title", title) }

// Lang sets the lang attribute.
func Lang(lang string) Attr { return attr("lang", lang) }

// Link attributes

func Href(url string) Attr      { return attr("href", url) }
func Target(target string) Attr { return attr("target", target) }
func Rel(rel string) Attr       { return attr("rel", rel) }

// Form and media attributes

func Name_(name string) Attr          { return attr("name", name) }
func Value(value any) Attr            { return attr("value", value) }
func Type(t string) Attr              { return attr("type", t) }
func Placeholder(text string) Attr    { return attr("placeholder", text) }
func For(id string) Attr              { return attr("for", id) }
func Action(url string) Attr          { return attr("action", url) }
func Method(method string) Attr       { return attr("method", method) }
func Src(url string) Attr             { return attr("src", url) }
func Alt(text string) Attr            { return attr("alt", text) }
func Width(w int) Attr                { return attr("width", w) }
func Height(h int) Attr               { return attr("height", h) }
func Charset(charset string) Attr     { return attr("charset", charset) }
func Content(content string) Attr     { return attr("content", content) }
func Colspan(n int) Attr              { return attr("colspan", n) }
func Rowspan(n int) Attr              { return attr("rowspan", n) }
func Checked(checked bool) Attr       { return attr("checked", checked) }
func Disabled(disabled bool) Attr     { return attr("disabled", disabled) }
func Prop(key string, value any) Attr { return attr(key, value) }
