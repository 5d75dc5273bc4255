package render

import (
	"context"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/embedded"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/vrender/pkg/vdom"
)

// recordingTracer records span names and otherwise behaves like a noop tracer.
type recordingTracer struct {
	embedded.Tracer

	mu    sync.Mutex
	names []string
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	t.mu.Lock()
	t.names = append(t.names, name)
	t.mu.Unlock()
	return noop.NewTracerProvider().Tracer("test").Start(ctx, name, opts...)
}

func (t *recordingTracer) count(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, s := range t.names {
		if s == name {
			n++
		}
	}
	return n
}

// componentCall captures the arguments of a component invocation.
type componentCall struct {
	props    vdom.Props
	resolver any
}

// spy returns a component that records its calls and renders the
// children it receives inside a <section>.
func spy(calls *[]componentCall, mu *sync.Mutex) vdom.Component {
	return func(ctx context.Context, props vdom.Props, resolver any) (*vdom.Element, error) {
		mu.Lock()
		*calls = append(*calls, componentCall{props: props, resolver: resolver})
		mu.Unlock()
		return vdom.Section(nil, props.GetString("children")), nil
	}
}

// counter returns a component that counts invocations.
func counter(n *atomic.Int32, out string) vdom.Component {
	return func(ctx context.Context, props vdom.Props, resolver any) (*vdom.Element, error) {
		n.Add(1)
		return vdom.Span(nil, out), nil
	}
}
