package appcore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"seqsample/internal/kmerindex"
	"seqsample/internal/output"
	"seqsample/internal/stats"
)

// MatchOptions configures one k-mer match run.
type MatchOptions struct {
	Kmers string
	Index kmerindex.Options
	Scan  kmerindex.ScanOptions

	// Inputs[i] is scanned into Outputs[i]; an empty output only counts.
	Inputs  []string
	Outputs []string

	KmerCounts     string // "" = no count table
	CountThreshold int

	Stdout io.Writer
}

// MatchResult summarizes a finished match run.
type MatchResult struct {
	Indexed int
	Totals  kmerindex.Totals
	Counted int // lines written to KmerCounts
}

// Match indexes the k-mers of o.Kmers, scans every input against them and
// writes the kept reads, then the per-k-mer counts accumulated over all
// inputs. An output is removed again if producing it fails.
func Match(ctx context.Context, env Env, o MatchOptions) (MatchResult, error) {
	if env.Logger == nil {
		env.Logger = zap.NewNop()
	}
	if env.Stats == nil {
		env.Stats = stats.NewNoop()
	}
	var res MatchResult

	idx, err := kmerindex.Build(ctx, o.Kmers, o.Index)
	if err != nil {
		return res, err
	}
	res.Indexed = idx.Len()
	env.Stats.SetGauge(stats.MetricIndexedKmers, int64(res.Indexed))
	env.Logger.Info("k-mers indexed", zap.String("kmers", o.Kmers), zap.Int("distinct", res.Indexed))
	if res.Indexed == 0 {
		env.Logger.Warn("no k-mer indexed, no read will match", zap.String("kmers", o.Kmers), zap.Int("k", o.Index.K))
	}

	sc := kmerindex.NewScanner(idx, o.Scan, env.Stats)
	for i, in := range o.Inputs {
		out := ""
		if i < len(o.Outputs) {
			out = o.Outputs[i]
		}
		err := withOutput(env, out, o.Stdout, func(w io.Writer) error {
			if err := sc.ScanFile(ctx, in, w); err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			return nil
		})
		if err != nil {
			return res, err
		}
		env.Logger.Debug("reads scanned", zap.String("input", in), zap.Int("reads", sc.Totals().Reads), zap.Int("kept", sc.Totals().Kept))
	}
	res.Totals = sc.Totals()

	if o.KmerCounts != "" {
		err := withOutput(env, o.KmerCounts, o.Stdout, func(w io.Writer) error {
			n, err := idx.WriteCounts(w, o.CountThreshold)
			res.Counted = n
			return err
		})
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

// withOutput runs fn against the file at path, or against nil when path is
// empty. Failures writing the file are reported as *OutputError, and a
// file left incomplete is removed.
func withOutput(env Env, path string, stdout io.Writer, fn func(io.Writer) error) error {
	if path == "" {
		return fn(nil)
	}
	wc, err := createOutput(path, stdout)
	if err != nil {
		return &OutputError{Err: err}
	}
	rw := &recordingWriter{w: wc}
	err = fn(rw)
	cerr := wc.Close()
	switch {
	case rw.err != nil:
		err = &OutputError{Err: fmt.Errorf("%s: %w", path, rw.err)}
	case err == nil && cerr != nil:
		err = &OutputError{Err: fmt.Errorf("%s: %w", path, cerr)}
	}
	if err != nil && path != "-" && !output.IsBrokenPipe(err) {
		if rerr := os.Remove(path); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
			env.Logger.Warn("removing partial output", zap.String("output", path), zap.Error(rerr))
		}
	}
	return err
}

func createOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "-" && stdout != nil {
		return nopWriteCloser{stdout}, nil
	}
	return output.CreateFile(path)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// recordingWriter keeps the first write error so it can be told apart from
// read errors surfacing through the same call.
type recordingWriter struct {
	w   io.Writer
	err error
}

func (r *recordingWriter) Write(p []byte) (int, error) {
	n, err := r.w.Write(p)
	if err != nil && r.err == nil {
		r.err = err
	}
	return n, err
}
