package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/tessel/pkg/dispatch"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "tessel").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for event and frame durations.
	Buckets []float64

	// Registry receives the metrics. Default: a fresh registry.
	Registry *prometheus.Registry
}

// MetricsOption configures the Prometheus metrics.
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

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry *prometheus.Registry) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "tessel",
		Buckets:   []float64{.0001, .0005, .001, .0025, .005, .01, .025, .05, .1},
	}
}

// Metrics holds the Prometheus collectors of one app.
type Metrics struct {
	registry *prometheus.Registry

	eventsTotal   *prometheus.CounterVec
	eventDuration *prometheus.HistogramVec
	eventPanics   *prometheus.CounterVec

	redraws       prometheus.Counter
	frameDuration prometheus.Histogram
	treeNodes     prometheus.Gauge
	focusables    prometheus.Gauge
}

// NewMetrics creates the collectors and registers them.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}
	f := promauto.With(cfg.Registry)

	return &Metrics{
		registry:      cfg.Registry,
		eventsTotal:   f.NewCounterVec(cfg.counter("events_total", "Input events dispatched, by kind and outcome"), []string{"kind", "status"}),
		eventDuration: f.NewHistogramVec(cfg.histogram("event_duration_seconds", "Dispatch time per event, handlers included"), []string{"kind"}),
		eventPanics:   f.NewCounterVec(cfg.counter("event_panics_total", "Handler panics, by event kind"), []string{"kind"}),
		redraws:       f.NewCounter(cfg.counter("redraws_total", "Frames painted")),
		frameDuration: f.NewHistogram(cfg.histogram("frame_duration_seconds", "Layout, paint and draw time per frame")),
		treeNodes:     f.NewGauge(prometheus.GaugeOpts(cfg.counter("tree_nodes", "Live nodes in the tree"))),
		focusables:    f.NewGauge(prometheus.GaugeOpts(cfg.counter("focusable_nodes", "Nodes in the focus registry"))),
	}
}

func (c MetricsConfig) counter(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   c.Namespace,
		Subsystem:   c.Subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: c.ConstLabels,
	}
}

func (c MetricsConfig) histogram(name, help string) prometheus.HistogramOpts {
	o := c.counter(name, help)
	return prometheus.HistogramOpts{
		Namespace:   o.Namespace,
		Subsystem:   o.Subsystem,
		Name:        o.Name,
		Help:        o.Help,
		ConstLabels: o.ConstLabels,
		Buckets:     c.Buckets,
	}
}

// Prometheus is shorthand for NewMetrics(opts...).Middleware().
func Prometheus(opts ...MetricsOption) dispatch.Middleware {
	return NewMetrics(opts...).Middleware()
}

// Middleware records a count, a duration and any panic for every dispatch
// pass. Status is "handled", "unhandled", "stopped" or "panic". Panics are
// re-raised after being counted.
func (m *Metrics) Middleware() dispatch.Middleware {
	return func(next dispatch.Func) dispatch.Func {
		return func(c *dispatch.Context) {
			timer := prometheus.NewTimer(m.eventDuration.WithLabelValues(c.Kind))
			defer func() {
				if r := recover(); r != nil {
					m.eventPanics.WithLabelValues(c.Kind).Inc()
					m.eventsTotal.WithLabelValues(c.Kind, "panic").Inc()
					panic(r)
				}
			}()

			next(c)

			timer.ObserveDuration()
			m.eventsTotal.WithLabelValues(c.Kind, outcome(c)).Inc()
		}
	}
}

func outcome(c *dispatch.Context) string {
	switch {
	case c.Stopped():
		return "stopped"
	case c.Handled > 0:
		return "handled"
	default:
		return "unhandled"
	}
}

// RecordFrame records one painted frame.
func (m *Metrics) RecordFrame(d time.Duration, nodes, focusables int) {
	m.redraws.Inc()
	m.frameDuration.Observe(d.Seconds())
	m.treeNodes.Set(float64(nodes))
	m.focusables.Set(float64(focusables))
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collectors in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
