package render

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the renderer's Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vrender").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the renderer's Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the render duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vrender",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the renderer's Prometheus collectors. A nil *Metrics
// records nothing, so renderers can hold one unconditionally.
//
// Metrics collected:
//   - vrender_renders_total: Counter of top-level renders by status
//   - vrender_render_duration_seconds: Histogram of top-level render duration
//   - vrender_component_invocations_total: Counter of component calls by status
//   - vrender_dropped_children_total: Counter of children dropped as unrenderable
//   - vrender_output_bytes: Histogram of rendered output size
type Metrics struct {
	rendersTotal    *prometheus.CounterVec
	renderDuration  prometheus.Histogram
	componentCalls  *prometheus.CounterVec
	droppedChildren prometheus.Counter
	outputBytes     prometheus.Histogram
}

// NewMetrics creates and registers the renderer metrics.
// Registering twice against the same registry panics, like promauto.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		rendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of top-level renders",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Top-level render duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		componentCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "component_invocations_total",
			Help:        "Total number of function component invocations",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		droppedChildren: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dropped_children_total",
			Help:        "Total number of children dropped because they were not strings, elements or lists",
			ConstLabels: config.ConstLabels,
		}),

		outputBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "output_bytes",
			Help:        "Size of rendered markup in bytes",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.ExponentialBuckets(256, 4, 8), // 256B to 4MB
		}),
	}
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (m *Metrics) observeRender(d time.Duration, size int, err error) {
	if m == nil {
		return
	}
	m.rendersTotal.WithLabelValues(statusLabel(err)).Inc()
	m.renderDuration.Observe(d.Seconds())
	if err == nil {
		m.outputBytes.Observe(float64(size))
	}
}

func (m *Metrics) observeComponent(err error) {
	if m == nil {
		return
	}
	m.componentCalls.WithLabelValues(statusLabel(err)).Inc()
}

func (m *Metrics) observeDropped() {
	if m == nil {
		return
	}
	m.droppedChildren.Inc()
}
