package vdom

// Fragment groups children without a wrapper element. The result is a
// nested sequence, which the renderer resolves as a single unit.
func Fragment(children ...any) []any {
	return children
}

// If returns the child if condition is true, nil otherwise.
func If(condition bool, child any) any {
	if condition {
		return child
	}
	return nil
}

// IfElse returns the first child if condition is true, the second otherwise.
func IfElse(condition bool, ifTrue, ifFalse any) any {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// When is like If but with lazy evaluation.
// The function is only called if condition is true.
func When(condition bool, fn func() any) any {
	if condition {
		return fn()
	}
	return nil
}

// Unless is the inverse of If.
func Unless(condition bool, child any) any {
	if !condition {
		return child
	}
	return nil
}

// Range maps items to children, preserving order.
func Range[T any](items []T, fn func(index int, item T) any) []any {
	out := make([]any, 0, len(items))
	for i, item := range items {
		out = append(out, fn(i, item))
	}
	return out
}
