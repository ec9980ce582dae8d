// Package metrics exports build, resolve and store activity to Prometheus.
//
// It implements the hook interfaces of pkg/observability:
//
//	m := metrics.New(metrics.WithRegistry(reg))
//	m.Install()
//	http.Handle("/metrics", m.Handler())
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/uiregistry/pkg/observability"
)

// Config configures the collectors.
type Config struct {
	// Namespace is the metrics namespace (default: "uiregistry").
	Namespace string

	// Buckets are the histogram buckets for durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry registers the collectors and backs Handler.
	// Default: a fresh prometheus.Registry.
	Registry *prometheus.Registry
}

// Option configures Metrics.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) { c.Namespace = namespace }
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) { c.Buckets = buckets }
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(r *prometheus.Registry) Option {
	return func(c *Config) { c.Registry = r }
}

// Metrics holds the collectors. It implements observability.BuildHooks,
// observability.ResolveHooks and observability.StoreHooks.
type Metrics struct {
	registry *prometheus.Registry

	resolvesTotal   *prometheus.CounterVec
	resolveDuration *prometheus.HistogramVec

	buildsTotal     *prometheus.CounterVec
	buildDuration   prometheus.Histogram
	buildComponents prometheus.Gauge
	componentDeps   prometheus.Histogram

	storeOps   *prometheus.CounterVec
	storeBytes *prometheus.GaugeVec
}

// New creates and registers the collectors.
func New(opts ...Option) *Metrics {
	cfg := Config{
		Namespace: "uiregistry",
		Buckets:   prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}
	factory := promauto.With(cfg.Registry)

	return &Metrics{
		registry: cfg.Registry,

		resolvesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "resolves_total",
			Help:      "Component resolutions by outcome",
		}, []string{"state"}),

		resolveDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "resolve_duration_seconds",
			Help:      "Component resolution duration in seconds",
			Buckets:   cfg.Buckets,
		}, []string{"state"}),

		buildsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "builds_total",
			Help:      "Registry builds by result",
		}, []string{"result"}),

		buildDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "build_duration_seconds",
			Help:      "Registry build duration in seconds",
			Buckets:   cfg.Buckets,
		}),

		buildComponents: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "registry_components",
			Help:      "Components in the last successful build",
		}),

		componentDeps: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "component_dependencies",
			Help:      "Detected npm dependencies per component",
			Buckets:   []float64{1, 2, 3, 5, 8},
		}),

		storeOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "store_operations_total",
			Help:      "Artifact store operations by backend, operation and result",
		}, []string{"backend", "op", "result"}),

		storeBytes: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "artifact_bytes",
			Help:      "Size of the last artifact loaded or saved",
		}, []string{"backend"}),
	}
}

// Install registers m as the global build, resolve and store hooks.
func (m *Metrics) Install() {
	observability.SetBuildHooks(m)
	observability.SetResolveHooks(m)
	observability.SetStoreHooks(m)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) OnResolve(_ context.Context, _ string, state string, d time.Duration) {
	m.resolvesTotal.WithLabelValues(state).Inc()
	m.resolveDuration.WithLabelValues(state).Observe(d.Seconds())
}

func (m *Metrics) OnBuildStart(context.Context, string) {}

func (m *Metrics) OnComponent(_ context.Context, _ string, deps int) {
	m.componentDeps.Observe(float64(deps))
}

func (m *Metrics) OnBuildComplete(_ context.Context, n int, d time.Duration, err error) {
	m.buildsTotal.WithLabelValues(result(err)).Inc()
	m.buildDuration.Observe(d.Seconds())
	if err == nil {
		m.buildComponents.Set(float64(n))
	}
}

func (m *Metrics) OnLoad(_ context.Context, backend string, size int, err error) {
	m.storeOps.WithLabelValues(backend, "load", result(err)).Inc()
	if err == nil {
		m.storeBytes.WithLabelValues(backend).Set(float64(size))
	}
}

func (m *Metrics) OnSave(_ context.Context, backend string, size int, err error) {
	m.storeOps.WithLabelValues(backend, "save", result(err)).Inc()
	if err == nil {
		m.storeBytes.WithLabelValues(backend).Set(float64(size))
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

var (
	_ observability.BuildHooks   = (*Metrics)(nil)
	_ observability.ResolveHooks = (*Metrics)(nil)
	_ observability.StoreHooks   = (*Metrics)(nil)
)
