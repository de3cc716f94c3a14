package middleware

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/elements/internal/errors"
	"github.com/vango-dev/elements/pkg/element"
	"github.com/vango-dev/elements/pkg/transform"
)

// MetricsConfig configures the Prometheus renderer decorator.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "elements").
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

// MetricsOption configures the Prometheus renderer decorator.
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
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "elements",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the render metrics shared by every instrumented renderer.
type Metrics struct {
	rendersTotal   *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	renderErrors   *prometheus.CounterVec
	liveHandles    *prometheus.GaugeVec
}

// NewMetrics registers the render metrics with the configured registry.
// Registering twice with the same registry panics; share one Metrics per
// registry.
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
			Help:        "Total renderer calls by element, operation and status",
			ConstLabels: config.ConstLabels,
		}, []string{"tag", "op", "status"}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Renderer call duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"tag", "op"}),

		renderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_errors_total",
			Help:        "Total renderer failures by error type",
			ConstLabels: config.ConstLabels,
		}, []string{"tag", "op", "error_type"}),

		liveHandles: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_handles",
			Help:        "Number of mounted element trees",
			ConstLabels: config.ConstLabels,
		}, []string{"tag"}),
	}
}

var (
	globalMetrics   *Metrics
	globalMetricsMu sync.Mutex
)

// Prometheus wraps r so every Mount, Update and Unmount is counted and
// timed under tag. The metrics are created on first use and shared by
// later calls; options only take effect on that first call.
//
//	def, err := element.NewDefinition(
//	    middleware.Prometheus("x-button", render.Component(button)),
//	    opts,
//	)
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(tag string, r element.Renderer, opts ...MetricsOption) element.Renderer {
	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = NewMetrics(opts...)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return m.Wrap(tag, r)
}

// Wrap returns r instrumented with m.
func (m *Metrics) Wrap(tag string, r element.Renderer) element.Renderer {
	return &instrumented{next: r, metrics: m, tag: tag}
}

type instrumented struct {
	next    element.Renderer
	metrics *Metrics
	tag     string
}

func (i *instrumented) Mount(container element.Container, props element.Props) (element.Handle, error) {
	start := time.Now()
	h, err := i.next.Mount(container, props)
	i.observe("mount", start, err)
	if err == nil {
		i.metrics.liveHandles.WithLabelValues(i.tag).Inc()
	}
	return h, err
}

func (i *instrumented) Update(handle element.Handle, props element.Props) error {
	start := time.Now()
	err := i.next.Update(handle, props)
	i.observe("update", start, err)
	return err
}

// Unmount always releases the live handle: the element drops it even when
// the renderer fails.
func (i *instrumented) Unmount(handle element.Handle) error {
	start := time.Now()
	err := i.next.Unmount(handle)
	i.observe("unmount", start, err)
	i.metrics.liveHandles.WithLabelValues(i.tag).Dec()
	return err
}

func (i *instrumented) observe(op string, start time.Time, err error) {
	i.metrics.renderDuration.WithLabelValues(i.tag, op).Observe(time.Since(start).Seconds())

	status := "success"
	if err != nil {
		status = "error"
		i.metrics.renderErrors.WithLabelValues(i.tag, op, categorizeError(err)).Inc()
	}
	i.metrics.rendersTotal.WithLabelValues(i.tag, op, status).Inc()
}

// categorizeError maps an error to a low-cardinality label.
func categorizeError(err error) string {
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case stderrors.Is(err, context.Canceled):
		return "canceled"
	case stderrors.Is(err, transform.ErrShape):
		return "shape"
	case stderrors.Is(err, transform.ErrType):
		return "type"
	}
	if code := errors.Code(err); code != "" {
		return strings.ToLower(code)
	}
	return "internal"
}
