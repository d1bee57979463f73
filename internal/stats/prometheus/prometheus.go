// Package prometheus exposes the tool's metrics as Prometheus collectors,
// typically written out once with prometheus.WriteToTextfile.
package prometheus

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"seqsample/internal/stats"
)

// Collector implements stats.Collector with Prometheus metrics created on
// first use. Every metric carries a constant "command" label naming the
// subcommand that produced it.
type Collector struct {
	registry prometheus.Registerer
	labels   prometheus.Labels

	mu      sync.Mutex
	metrics map[string]prometheus.Collector
}

var _ stats.Collector = (*Collector)(nil)

// New returns a collector registering into registry (the default registerer
// when nil) with command as the value of the "command" label.
func New(registry prometheus.Registerer, command string) *Collector {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	var labels prometheus.Labels
	if command != "" {
		labels = prometheus.Labels{"command": command}
	}
	return &Collector{
		registry: registry,
		labels:   labels,
		metrics:  make(map[string]prometheus.Collector),
	}
}

func (c *Collector) IncCounter(name string, delta int64) {
	lookup(c, name, func(o prometheus.Opts) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts(o))
	}).Add(float64(delta))
}

func (c *Collector) SetGauge(name string, value int64) {
	lookup(c, name, func(o prometheus.Opts) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts(o))
	}).Set(float64(value))
}

func (c *Collector) ObserveHistogram(name string, value float64) {
	lookup(c, name, func(o prometheus.Opts) prometheus.Histogram {
		return prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        o.Name,
			Help:        o.Help,
			ConstLabels: o.ConstLabels,
			Buckets:     bucketsFor(name),
		})
	}).Observe(value)
}

// bucketsFor picks histogram buckets by what the metric measures.
func bucketsFor(name string) []float64 {
	switch name {
	case stats.MetricSharedKmersPct:
		return prometheus.LinearBuckets(0, 10, 11)
	default:
		// Sequence lengths, from short k-mers to long reads.
		return prometheus.ExponentialBuckets(8, 2, 12)
	}
}

// lookup returns the metric registered under name, building it on first
// use. A metric of the same shape already in the registry is adopted.
func lookup[M prometheus.Collector](c *Collector, name string, build func(prometheus.Opts) M) M {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.metrics[name].(M); ok {
		return m
	}

	help := stats.Help[name]
	if help == "" {
		help = name
	}
	m := build(prometheus.Opts{Name: name, Help: help, ConstLabels: c.labels})
	if err := c.registry.Register(m); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(M); ok {
				m = existing
			}
		}
	}
	c.metrics[name] = m
	return m
}
