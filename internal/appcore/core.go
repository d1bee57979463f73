package appcore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"seqsample/internal/output"
	"seqsample/internal/sampler"
	"seqsample/internal/seqio"
	"seqsample/internal/stats"
)

// Options configures one sampling run.
type Options struct {
	Input  string
	Output string // "-" = Stdout
	Stdout io.Writer

	Seed uint64 // 0 = seed from the runtime
}

// Env carries the ambient services of a run.
type Env struct {
	Logger *zap.Logger
	Stats  stats.Collector
}

// OutputError marks failures writing the result file.
type OutputError struct{ Err error }

func (e *OutputError) Error() string { return "output: " + e.Err.Error() }
func (e *OutputError) Unwrap() error { return e.Err }

// DrawFunc runs one sampling strategy against s, emitting into emit.
type DrawFunc func(ctx context.Context, s *sampler.Sampler, emit func([]byte) error) (int, error)

// Run loads every read of o.Input, then draws into a FASTA file at o.Output.
// The output is removed again if sampling fails. It returns the number of
// records written.
func Run(ctx context.Context, env Env, o Options, draw DrawFunc) (int, error) {
	if env.Logger == nil {
		env.Logger = zap.NewNop()
	}
	if env.Stats == nil {
		env.Stats = stats.NewNoop()
	}

	reads, err := seqio.ReadAll(ctx, o.Input)
	if err != nil {
		return 0, err
	}
	var bases int64
	for _, r := range reads {
		bases += int64(len(r))
	}
	env.Stats.IncCounter(stats.MetricReadsLoaded, int64(len(reads)))
	env.Stats.IncCounter(stats.MetricReadBases, bases)
	env.Logger.Info("reads loaded",
		zap.String("input", o.Input),
		zap.Int("reads", len(reads)),
		zap.Int64("bases", bases),
	)
	if len(reads) == 0 {
		return 0, fmt.Errorf("%s: %w", o.Input, sampler.ErrNoReads)
	}

	opts := []sampler.Option{
		sampler.WithStats(env.Stats),
		sampler.WithLogger(env.Logger),
	}
	if o.Seed != 0 {
		opts = append(opts, sampler.WithSeed(o.Seed))
	}
	s := sampler.New(reads, opts...)

	w, err := openOutput(o)
	if err != nil {
		return 0, &OutputError{Err: err}
	}
	var writeErr error
	n, err := draw(ctx, s, func(seq []byte) error {
		if werr := w.Write(seq); werr != nil {
			writeErr = werr
			return werr
		}
		return nil
	})
	cerr := w.Close()
	switch {
	case writeErr != nil:
		err = &OutputError{Err: writeErr}
	case err == nil && cerr != nil:
		err = &OutputError{Err: cerr}
	}
	if err != nil {
		if o.Output != "-" && !output.IsBrokenPipe(err) {
			if rerr := os.Remove(o.Output); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
				env.Logger.Warn("removing partial output", zap.String("output", o.Output), zap.Error(rerr))
			}
		}
		return n, err
	}
	return n, nil
}

func openOutput(o Options) (*output.FASTAWriter, error) {
	if o.Output == "-" && o.Stdout != nil {
		return output.NewFASTAWriter(o.Stdout), nil
	}
	return output.Create(o.Output)
}

// Summary prints the one-line report of a finished run.
func Summary(w io.Writer, n int, what, out string) {
	if out == "-" {
		out = "stdout"
	}
	_, _ = fmt.Fprintf(w, "%d random %s extracted and saved to %s\n", n, what, out)
}
