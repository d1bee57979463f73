// Package logger provides a stats collector that accumulates metrics in
// memory and logs one summary line per metric when flushed.
package logger

import (
	"math"
	"sort"
	"sync"

	"go.uber.org/zap"

	"seqsample/internal/stats"
)

// Collector implements stats.Collector and stats.Flusher. Observations are
// aggregated so that per-sample calls never reach the log.
type Collector struct {
	logger *zap.Logger

	mu         sync.Mutex
	counters   map[string]int64
	gauges     map[string]int64
	histograms map[string]*summary
}

type summary struct {
	count    int64
	sum      float64
	min, max float64
}

var (
	_ stats.Collector = (*Collector)(nil)
	_ stats.Flusher   = (*Collector)(nil)
)

// New creates a collector logging to logger at debug level. A nil logger
// discards the summary.
func New(logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{
		logger:     logger,
		counters:   make(map[string]int64),
		gauges:     make(map[string]int64),
		histograms: make(map[string]*summary),
	}
}

func (c *Collector) IncCounter(name string, delta int64) {
	c.mu.Lock()
	c.counters[name] += delta
	c.mu.Unlock()
}

func (c *Collector) SetGauge(name string, value int64) {
	c.mu.Lock()
	c.gauges[name] = value
	c.mu.Unlock()
}

func (c *Collector) ObserveHistogram(name string, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.histograms[name]
	if !ok {
		s = &summary{min: math.Inf(1), max: math.Inf(-1)}
		c.histograms[name] = s
	}
	s.count++
	s.sum += value
	s.min = math.Min(s.min, value)
	s.max = math.Max(s.max, value)
}

// Flush logs every metric seen so far, sorted by name, and resets them.
func (c *Collector) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, name := range sortedKeys(c.counters) {
		c.logger.Debug("counter", zap.String("metric", name), zap.Int64("total", c.counters[name]))
	}
	for _, name := range sortedKeys(c.gauges) {
		c.logger.Debug("gauge", zap.String("metric", name), zap.Int64("value", c.gauges[name]))
	}
	for _, name := range sortedKeys(c.histograms) {
		s := c.histograms[name]
		c.logger.Debug("histogram",
			zap.String("metric", name),
			zap.Int64("count", s.count),
			zap.Float64("min", s.min),
			zap.Float64("max", s.max),
			zap.Float64("mean", s.sum/float64(s.count)),
		)
	}
	clear(c.counters)
	clear(c.gauges)
	clear(c.histograms)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
