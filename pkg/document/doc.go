// Package document decodes element trees from YAML or JSON documents.
//
// A document is a single node. A node is either a mapping with a tag,
// a string, a sequence of nodes, or another scalar:
//
//	tag: section
//	props:
//	  className: card
//	  style: {color: red, margin: "0"}
//	children:
//	  - "Hello "
//	  - tag: Greeting
//	    props: {name: world}
//	  - ["nested", "list"]
//
// Mapping order is kept, so props and style declarations serialize in
// the order they are written. Tags that match a name in the Registry
// become component tags; every other tag is a markup tag.
//
// Numbers, booleans and nulls decode to their Go values and are passed
// to the renderer as children, which drops them (or rejects them in
// strict mode).
package document
