// Package sampler draws random k-mers and subsequences from an in-memory
// collection of reads.
package sampler

import (
	"context"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"seqsample/internal/dna"
	"seqsample/internal/stats"
)

// cancelCheckEvery is how many draws happen between context checks.
const cancelCheckEvery = 1024

// Sampler draws from a fixed read collection. It is not safe for
// concurrent use.
type Sampler struct {
	reads [][]byte
	opts  options
}

// New returns a Sampler over reads. The reads are not copied and must not
// change while the Sampler is in use.
func New(reads [][]byte, opts ...Option) *Sampler {
	o := defaultOptions()
	for _, opt := range opts {
		opt.apply(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Sampler{reads: reads, opts: o}
}

// Len returns the number of reads in the collection.
func (s *Sampler) Len() int { return len(s.reads) }

// Kmers emits req.Count substrings of exactly req.K bases, each taken at a
// uniform offset of a uniformly chosen read. Reads shorter than K are
// never chosen. emit receives a view into the read that is only valid during
// the call. It returns how many k-mers were emitted.
func (s *Sampler) Kmers(ctx context.Context, req FixedRequest, emit func(seq []byte) error) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	rng := s.opts.rng
	pick := func(read []byte) []byte {
		start := rng.IntN(len(read) - req.K + 1)
		return read[start : start+req.K]
	}
	return s.run(ctx, "kmers", req.Count, req.K, canonicalizer(req.Canonical, req.Ordering), pick, emit)
}

// Sequences emits req.Count subsequences. Each starts uniformly in
// [0, len-MinSize] of a uniformly chosen read, and its length is uniform in
// [MinSize, min(MaxSize, len-start)]. Reads shorter than MinSize are
// never chosen. emit follows the same contract as in Kmers.
func (s *Sampler) Sequences(ctx context.Context, req VariableRequest, emit func(seq []byte) error) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	rng := s.opts.rng
	pick := func(read []byte) []byte {
		start := rng.IntN(len(read) - req.MinSize + 1)
		hi := min(req.MaxSize, len(read)-start)
		length := req.MinSize + rng.IntN(hi-req.MinSize+1)
		return read[start : start+length]
	}
	return s.run(ctx, "sequences", req.Count, req.MinSize, canonicalizer(req.Canonical, req.Ordering), pick, emit)
}

func canonicalizer(enabled bool, o dna.Ordering) func([]byte) []byte {
	if !enabled {
		return nil
	}
	return o.Canonical
}

func (s *Sampler) run(
	ctx context.Context,
	kind string,
	count, minLen int,
	canon func([]byte) []byte,
	pick func([]byte) []byte,
	emit func([]byte) error,
) (int, error) {
	if len(s.reads) == 0 {
		return 0, ErrNoReads
	}
	if count == 0 {
		return 0, nil
	}

	// Uniform over the long-enough reads: the distribution of redrawing
	// short ones until a long one comes up.
	var eligible []int
	longest := 0
	for i, r := range s.reads {
		if len(r) >= minLen {
			eligible = append(eligible, i)
		}
		longest = max(longest, len(r))
	}
	st := s.opts.stats
	st.SetGauge(stats.MetricCollectionReads, int64(len(s.reads)))
	st.SetGauge(stats.MetricEligibleReads, int64(len(eligible)))
	if len(eligible) == 0 {
		return 0, fmt.Errorf("%w: no read reaches %d bases (longest is %d)", ErrInsufficientData, minLen, longest)
	}

	var (
		rng       = s.opts.rng
		emitted   int
		sampleErr error
	)
	for emitted < count {
		if emitted%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				sampleErr = err
				break
			}
		}
		seq := pick(s.reads[eligible[rng.IntN(len(eligible))]])
		if canon != nil {
			seq = canon(seq)
		}
		if err := emit(seq); err != nil {
			sampleErr = err
			break
		}
		emitted++
		st.ObserveHistogram(stats.MetricSampleLength, float64(len(seq)))
	}
	st.IncCounter(stats.MetricSamplesEmitted, int64(emitted))

	s.opts.logger.Debug("sampling finished",
		zap.String("kind", kind),
		zap.Int("emitted", emitted),
		zap.Int("requested", count),
		zap.Int("eligible_reads", len(eligible)),
		zap.Error(sampleErr),
	)
	return emitted, sampleErr
}
