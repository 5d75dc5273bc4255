// Package errors provides coded, actionable errors for vrender.
//
// Every error vrender itself produces carries a short code (e.g. "R001")
// registered with a category, a one-line message and a longer detail.
// Errors raised by user components are never converted: the renderer
// returns them exactly as the component did.
//
// # Error Categories
//
//   - render: tree rendering failures (unsupported tag, strict mode)
//   - document: tree document decoding failures
//   - config: vrender.json loading and validation
//   - export: static export failures
//   - cli: command line usage errors
//
// # Usage
//
//	err := errors.New("D101").
//	    WithLocation("pages/index.yaml", 4, 3).
//	    WithSuggestion("Each node needs a tag")
//
//	fmt.Println(err.Format())
//
// Errors compare by code, so callers can test for a category of failure
// without holding the original value:
//
//	if errors.Is(err, vrerrors.New("R001")) { ... }
package errors
