package sampler

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"seqsample/internal/stats"
)

// Option configures a Sampler.
type Option interface {
	apply(*options)
}

type options struct {
	rng    *rand.Rand
	stats  stats.Collector
	logger *zap.Logger
}

func defaultOptions() options {
	return options{
		stats:  stats.NewNoop(),
		logger: zap.NewNop(),
	}
}

type optionFunc func(*options)

var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithRand sets the random source. Runs are reproducible for a given source.
func WithRand(r *rand.Rand) Option {
	return optionFunc(func(o *options) {
		o.rng = r
	})
}

// WithSeed seeds a PCG source with seed.
func WithSeed(seed uint64) Option {
	return optionFunc(func(o *options) {
		o.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	})
}

// WithStats sets the stats collector.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		if c != nil {
			o.stats = c
		}
	})
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		if l != nil {
			o.logger = l
		}
	})
}
