// Package metrics counts what an invocation resolved and installed and can
// export the counters in the Prometheus text format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures a Recorder.
type Config struct {
	// Namespace is the metric name prefix (default: "r_component").
	Namespace string

	// ConstLabels are added to every metric.
	ConstLabels prometheus.Labels

	// Registry receives the metrics. Default: a fresh registry.
	Registry *prometheus.Registry
}

// Option configures a Recorder.
type Option func(*Config)

// WithNamespace sets the metric namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the registry.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// Recorder holds the counters of one invocation. A nil *Recorder is valid
// and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	components   *prometheus.CounterVec
	resolved     prometheus.Counter
	unresolved   prometheus.Counter
	files        *prometheus.CounterVec
	dependencies prometheus.Counter
	duration     *prometheus.HistogramVec
}

// New creates a Recorder.
func New(opts ...Option) *Recorder {
	config := Config{Namespace: "r_component"}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Registry == nil {
		config.Registry = prometheus.NewRegistry()
	}

	factory := promauto.With(config.Registry)

	return &Recorder{
		registry: config.Registry,

		components: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "requested_components_total",
			Help:        "Components requested, by validity against the registry index",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		resolved: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "resolved_components_total",
			Help:        "Components in the resolved dependency closure",
			ConstLabels: config.ConstLabels,
		}),

		unresolved: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "unresolved_dependencies_total",
			Help:        "Registry dependencies that could not be resolved",
			ConstLabels: config.ConstLabels,
		}),

		files: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "files_total",
			Help:        "Files processed by the installer, by type and outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"type", "status"}),

		dependencies: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "npm_dependencies_total",
			Help:        "External package dependencies required by installed components",
			ConstLabels: config.ConstLabels,
		}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "operation_duration_seconds",
			Help:        "Duration of CLI operations in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveSelection records requested component names.
func (r *Recorder) ObserveSelection(valid, invalid int) {
	if r == nil {
		return
	}
	r.components.WithLabelValues("valid").Add(float64(valid))
	r.components.WithLabelValues("invalid").Add(float64(invalid))
}

// ObserveResolution records the size of the resolved closure.
func (r *Recorder) ObserveResolution(resolved, unresolved, dependencies int) {
	if r == nil {
		return
	}
	r.resolved.Add(float64(resolved))
	r.unresolved.Add(float64(unresolved))
	r.dependencies.Add(float64(dependencies))
}

// ObserveFile records one installer outcome.
func (r *Recorder) ObserveFile(fileType, status string) {
	if r == nil {
		return
	}
	r.files.WithLabelValues(fileType, status).Inc()
}

// ObserveDuration records how long an operation took.
func (r *Recorder) ObserveDuration(operation string, d time.Duration) {
	if r == nil {
		return
	}
	r.duration.WithLabelValues(operation).Observe(d.Seconds())
}

// WriteTextfile writes every metric to path in the text exposition format,
// as read by the node_exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
