package vdom

// CreateElement packages a tag, props and children into an Element.
// tag may be a string, a Component, a function with the Component
// signature or a Tag; anything else produces an invalid tag that fails
// at render time. Nothing is validated here and children are stored
// exactly as given.
func CreateElement(tag any, props Props, children ...any) *Element {
	return &Element{
		Tag:      TagOf(tag),
		Props:    props,
		Children: children,
	}
}

// H is a short alias for CreateElement.
func H(tag any, props Props, children ...any) *Element {
	return CreateElement(tag, props, children...)
}

func createElement(tag string, props Props, children []any) *Element {
	return &Element{
		Tag:      Name(tag),
		Props:    props,
		Children: children,
	}
}

// Document structure elements

func Html(props Props, children ...any) *Element  { return createElement("html", props, children) }
func Head(props Props, children ...any) *Element  { return createElement("head", props, children) }
func Body(props Props, children ...any) *Element  { return createElement("body", props, children) }
func Title(props Props, children ...any) *Element { return createElement("title", props, children) }
func Meta(props Props, children ...any) *Element  { return createElement("meta", props, children) }
func Link(props Props, children ...any) *Element  { return createElement("link", props, children) }

// Content sectioning elements

func Header(props Props, children ...any) *Element  { return createElement("header", props, children) }
func Footer(props Props, children ...any) *Element  { return createElement("footer", props, children) }
func Main(props Props, children ...any) *Element    { return createElement("main", props, children) }
func Nav(props Props, children ...any) *Element     { return createElement("nav", props, children) }
func Section(props Props, children ...any) *Element { return createElement("section", props, children) }
func Article(props Props, children ...any) *Element { return createElement("article", props, children) }
func Aside(props Props, children ...any) *Element   { return createElement("aside", props, children) }
func H1(props Props, children ...any) *Element      { return createElement("h1", props, children) }
func H2(props Props, children ...any) *Element      { return createElement("h2", props, children) }
func H3(props Props, children ...any) *Element      { return createElement("h3", props, children) }
func H4(props Props, children ...any) *Element      { return createElement("h4", props, children) }
func H5(props Props, children ...any) *Element      { return createElement("h5", props, children) }
func H6(props Props, children ...any) *Element      { return createElement("h6", props, children) }

// Text content elements

func Div(props Props, children ...any) *Element        { return createElement("div", props, children) }
func P(props Props, children ...any) *Element          { return createElement("p", props, children) }
func Span(props Props, children ...any) *Element       { return createElement("span", props, children) }
func Pre(props Props, children ...any) *Element        { return createElement("pre", props, children) }
func Blockquote(props Props, children ...any) *Element { return createElement("blockquote", props, children) }
func Ul(props Props, children ...any) *Element         { return createElement("ul", props, children) }
func Ol(props Props, children ...any) *Element         { return createElement("ol", props, children) }
func Li(props Props, children ...any) *Element         { return createElement("li", props, children) }
func Hr(props Props, children ...any) *Element         { return createElement("hr", props, children) }
func Figure(props Props, children ...any) *Element     { return createElement("figure", props, children) }

// Inline text semantics

func A(props Props, children ...any) *Element      { return createElement("a", props, children) }
func Strong(props Props, children ...any) *Element { return createElement("strong", props, children) }
func Em(props Props, children ...any) *Element     { return createElement("em", props, children) }
func Small(props Props, children ...any) *Element  { return createElement("small", props, children) }
func Code(props Props, children ...any) *Element   { return createElement("code", props, children) }
func Br(props Props, children ...any) *Element     { return createElement("br", props, children) }

// Form elements

func Form(props Props, children ...any) *Element     { return createElement("form", props, children) }
func Input(props Props, children ...any) *Element    { return createElement("input", props, children) }
func Textarea(props Props, children ...any) *Element { return createElement("textarea", props, children) }
func Select(props Props, children ...any) *Element   { return createElement("select", props, children) }
func Option(props Props, children ...any) *Element   { return createElement("option", props, children) }
func Button(props Props, children ...any) *Element   { return createElement("button", props, children) }
func Label(props Props, children ...any) *Element    { return createElement("label", props, children) }

// Table elements

func Table(props Props, children ...any) *Element { return createElement("table", props, children) }
func Thead(props Props, children ...any) *Element { return createElement("thead", props, children) }
func Tbody(props Props, children ...any) *Element { return createElement("tbody", props, children) }
func Tr(props Props, children ...any) *Element    { return createElement("tr", props, children) }
func Th(props Props, children ...any) *Element    { return createElement("th", props, children) }
func Td(props Props, children ...any) *Element    { return createElement("td", props, children) }

// Media elements

func Img(props Props, children ...any) *Element    { return createElement("img", props, children) }
func Video(props Props, children ...any) *Element  { return createElement("video", props, children) }
func Iframe(props Props, children ...any) *Element { return createElement("iframe", props, children) }
func Svg(props Props, children ...any) *Element    { return createElement("svg", props, children) }

// Scripting elements

func Script(props Props, children ...any) *Element   { return createElement("script", props, children) }
func Noscript(props Props, children ...any) *Element { return createElement("noscript", props, children) }
func Template(props Props, children ...any) *Element { return createElement("template", props, children) }

// CustomElement creates an element with a custom tag name.
func CustomElement(tag string, props Props, children ...any) *Element {
	return createElement(tag, props, children)
}
