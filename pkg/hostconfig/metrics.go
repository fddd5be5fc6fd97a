package hostconfig

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the host config metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vnative").
	Namespace string

	// Subsystem is the metrics subsystem (default: "host").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures Metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		if namespace != "" {
			c.Namespace = namespace
		}
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

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// Metrics counts host config activity. A nil *Metrics records nothing.
type Metrics struct {
	instancesCreated *prometheus.CounterVec
	updatesCommitted *prometheus.CounterVec
	payloadSize      prometheus.Histogram
	mutations        *prometheus.CounterVec
	diagnostics      *prometheus.CounterVec
	roots            prometheus.Gauge
}

// NewMetrics registers the host config metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := MetricsConfig{
		Namespace: "vnative",
		Subsystem: "host",
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		instancesCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "instances_created_total",
			Help:        "Views created, by element type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),

		updatesCommitted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "updates_committed_total",
			Help:        "Update payloads applied, by element type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),

		payloadSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "payload_size",
			Help:        "Entries per update payload",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.ExponentialBuckets(1, 2, 7),
		}),

		mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mutations_total",
			Help:        "Child list mutations, by operation",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		diagnostics: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "diagnostics_total",
			Help:        "Recoverable misuse reported as a diagnostic, by operation",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		roots: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "roots",
			Help:        "Live render roots",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) created(typ string) {
	if m != nil {
		m.instancesCreated.WithLabelValues(typ).Inc()
	}
}

func (m *Metrics) committed(typ string, size int) {
	if m != nil {
		m.updatesCommitted.WithLabelValues(typ).Inc()
		m.payloadSize.Observe(float64(size))
	}
}

func (m *Metrics) mutation(op string) {
	if m != nil {
		m.mutations.WithLabelValues(op).Inc()
	}
}

func (m *Metrics) diagnostic(op string) {
	if m != nil {
		m.diagnostics.WithLabelValues(op).Inc()
	}
}

// SetRoots records the number of live roots.
func (m *Metrics) SetRoots(n int) {
	if m != nil {
		m.roots.Set(float64(n))
	}
}
