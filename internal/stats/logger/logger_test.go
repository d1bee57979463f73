package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"seqsample/internal/stats"
)

func TestCollector_AggregatesUntilFlush(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := New(zap.New(core))

	for i := 0; i < 1000; i++ {
		c.IncCounter(stats.MetricSamplesEmitted, 1)
		c.ObserveHistogram(stats.MetricSampleLength, float64(10+i%3))
	}
	c.SetGauge(stats.MetricEligibleReads, 7)
	c.SetGauge(stats.MetricEligibleReads, 9)
	if n := logs.Len(); n != 0 {
		t.Fatalf("logged %d entries before Flush", n)
	}

	c.Flush()
	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("got %d log entries, want 3", len(entries))
	}
	if got := entries[0].ContextMap(); got["metric"] != stats.MetricSamplesEmitted || got["total"] != int64(1000) {
		t.Errorf("counter entry = %v", got)
	}
	if got := entries[1].ContextMap()["value"]; got != int64(9) {
		t.Errorf("gauge value = %v, want 9", got)
	}
	h := entries[2].ContextMap()
	if h["count"] != int64(1000) || h["min"] != float64(10) || h["max"] != float64(12) {
		t.Errorf("histogram entry = %v", h)
	}
}

func TestCollector_FlushResets(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := New(zap.New(core))
	c.IncCounter("x", 1)
	c.Flush()
	c.Flush()
	if n := logs.Len(); n != 1 {
		t.Fatalf("got %d entries, want 1", n)
	}
}

func TestNew_NilLogger(t *testing.T) {
	c := New(nil)
	c.IncCounter("x", 1)
	c.Flush()
}
