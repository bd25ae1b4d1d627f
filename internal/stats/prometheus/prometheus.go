// Package prometheus provides a Prometheus-based stats collector.
package prometheus

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/discochess/movegrade/internal/stats"
)

// Collector implements stats.Collector using Prometheus metrics.
// Metrics are created lazily on first use and registered with the
// configured registry.
type Collector struct {
	counters   *metricMap[prometheus.Counter]
	gauges     *metricMap[prometheus.Gauge]
	histograms *metricMap[prometheus.Histogram]
}

// Compile-time check that Collector implements stats.Collector.
var _ stats.Collector = (*Collector)(nil)

// New creates a new Prometheus collector.
// If registry is nil, prometheus.DefaultRegisterer is used.
func New(registry prometheus.Registerer) *Collector {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	return &Collector{
		counters: newMetricMap(registry, func(name string) prometheus.Counter {
			return prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: name})
		}),
		gauges: newMetricMap(registry, func(name string) prometheus.Gauge {
			return prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: name})
		}),
		histograms: newMetricMap(registry, func(name string) prometheus.Histogram {
			return prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    name,
				Help:    name,
				Buckets: prometheus.DefBuckets,
			})
		}),
	}
}

// IncCounter increments a counter metric.
func (c *Collector) IncCounter(name string, delta int64) {
	c.counters.get(name).Add(float64(delta))
}

// SetGauge sets a gauge metric.
func (c *Collector) SetGauge(name string, value int64) {
	c.gauges.get(name).Set(float64(value))
}

// ObserveHistogram records a value in a histogram.
func (c *Collector) ObserveHistogram(name string, value float64) {
	c.histograms.get(name).Observe(value)
}

// metricMap lazily creates and registers metrics of one kind by name.
type metricMap[M prometheus.Collector] struct {
	registry prometheus.Registerer
	create   func(name string) M

	mu      sync.RWMutex
	metrics map[string]M
}

func newMetricMap[M prometheus.Collector](registry prometheus.Registerer, create func(name string) M) *metricMap[M] {
	return &metricMap[M]{
		registry: registry,
		create:   create,
		metrics:  make(map[string]M),
	}
}

func (mm *metricMap[M]) get(name string) M {
	mm.mu.RLock()
	m, ok := mm.metrics[name]
	mm.mu.RUnlock()
	if ok {
		return m
	}

	mm.mu.Lock()
	defer mm.mu.Unlock()

	// Double-check after acquiring the write lock.
	if m, ok = mm.metrics[name]; ok {
		return m
	}

	m = mm.create(name)
	if err := mm.registry.Register(m); err != nil {
		// If already registered, reuse the existing metric.
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(M); ok {
				mm.metrics[name] = existing
				return existing
			}
		}
		// Registration failed but the metric itself still works.
	}
	mm.metrics[name] = m
	return m
}
