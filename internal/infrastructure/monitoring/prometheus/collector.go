// Package prometheus provides the engine's metrics abstraction and its
// Prometheus-backed implementation.  Components depend on the
// MetricsCollector interface; when metrics are disabled a no-op collector is
// injected instead, so call sites never branch on configuration.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ─────────────────────────────────────────────────────────────────────────────
// MetricsCollector interface
// ─────────────────────────────────────────────────────────────────────────────

// MetricsCollector is the instrumentation contract injected into every
// component that emits metrics.
type MetricsCollector interface {
	// IncCounter increments the named counter by 1.
	IncCounter(name string, labels map[string]string)

	// AddCounter increments the named counter by the given value.
	AddCounter(name string, value float64, labels map[string]string)

	// SetGauge sets the named gauge to the given value.
	SetGauge(name string, value float64, labels map[string]string)

	// ObserveHistogram records an observation in the named histogram.
	ObserveHistogram(name string, value float64, labels map[string]string)

	// Handler returns the HTTP handler serving the scrape endpoint.
	Handler() http.Handler
}

// Timer measures a duration and records it into a histogram on Stop.
type Timer struct {
	collector MetricsCollector
	name      string
	labels    map[string]string
	start     time.Time
}

// NewTimer starts a timer against the named histogram.
func NewTimer(c MetricsCollector, name string, labels map[string]string) *Timer {
	return &Timer{collector: c, name: name, labels: labels, start: time.Now()}
}

// Stop records the elapsed seconds and returns the duration.
func (t *Timer) Stop() time.Duration {
	d := time.Since(t.start)
	t.collector.ObserveHistogram(t.name, d.Seconds(), t.labels)
	return d
}

// ─────────────────────────────────────────────────────────────────────────────
// promCollector — prometheus/client_golang implementation
// ─────────────────────────────────────────────────────────────────────────────

// metricDef describes one metric registered up front.  All metrics are
// declared at construction; emitting an undeclared name is a silent no-op
// rather than a panic, since instrumentation must never take down the engine.
type metricDef struct {
	Name    string
	Help    string
	Labels  []string
	Buckets []float64 // histograms only
}

type promCollector struct {
	registry   *prometheus.Registry
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	histograms map[string]*prometheus.HistogramVec
}

// NewCollector builds a collector with its own registry and registers the
// standard process and Go runtime collectors alongside the supplied
// application metric definitions.
func NewCollector(namespace string, counters, gauges, histograms []metricDef) MetricsCollector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c := &promCollector{
		registry:   reg,
		counters:   make(map[string]*prometheus.CounterVec, len(counters)),
		gauges:     make(map[string]*prometheus.GaugeVec, len(gauges)),
		histograms: make(map[string]*prometheus.HistogramVec, len(histograms)),
	}

	for _, d := range counters {
		v := prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: d.Name, Help: d.Help,
		}, d.Labels)
		reg.MustRegister(v)
		c.counters[d.Name] = v
	}
	for _, d := range gauges {
		v := prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: d.Name, Help: d.Help,
		}, d.Labels)
		reg.MustRegister(v)
		c.gauges[d.Name] = v
	}
	for _, d := range histograms {
		buckets := d.Buckets
		if len(buckets) == 0 {
			buckets = prometheus.DefBuckets
		}
		v := prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: d.Name, Help: d.Help, Buckets: buckets,
		}, d.Labels)
		reg.MustRegister(v)
		c.histograms[d.Name] = v
	}
	return c
}

func (c *promCollector) IncCounter(name string, labels map[string]string) {
	if v, ok := c.counters[name]; ok {
		v.With(labels).Inc()
	}
}

func (c *promCollector) AddCounter(name string, value float64, labels map[string]string) {
	if v, ok := c.counters[name]; ok {
		v.With(labels).Add(value)
	}
}

func (c *promCollector) SetGauge(name string, value float64, labels map[string]string) {
	if v, ok := c.gauges[name]; ok {
		v.With(labels).Set(value)
	}
}

func (c *promCollector) ObserveHistogram(name string, value float64, labels map[string]string) {
	if v, ok := c.histograms[name]; ok {
		v.With(labels).Observe(value)
	}
}

func (c *promCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ─────────────────────────────────────────────────────────────────────────────
// noop collector
// ─────────────────────────────────────────────────────────────────────────────

type noopCollector struct{}

func (noopCollector) IncCounter(string, map[string]string) {}

func (noopCollector) AddCounter(string, float64, map[string]string) {}

func (noopCollector) SetGauge(string, float64, map[string]string) {}

func (noopCollector) ObserveHistogram(string, float64, map[string]string) {}
func (noopCollector) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
}

// NewNoopCollector returns a collector that discards everything.  Injected
// when metrics are disabled and in unit tests.
func NewNoopCollector() MetricsCollector { return noopCollector{} }
