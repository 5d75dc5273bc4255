// Package components provides built-in function components for tree
// documents.
//
// Markdown converts Markdown source to HTML. Include renders a named
// fragment looked up through the resolver. Register installs both in a
// document registry:
//
//	reg := document.NewRegistry()
//	components.Register(reg)
//
//	tree, err := document.Decode([]byte(`
//	tag: Markdown
//	props: {className: prose}
//	children: ["# Hello"]
//	`), reg)
package components
