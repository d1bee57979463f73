package kmerindex

import (
	"bufio"
	"context"
	"io"

	"seqsample/internal/dna"
	"seqsample/internal/seqio"
	"seqsample/internal/stats"
)

// ScanOptions select reads by their shared k-mer percentage p: a read is
// kept when Min < p <= Max.
type ScanOptions struct {
	Min, Max float64

	// QueryReverse scans the reverse complement of each read. Kept reads are
	// written in that orientation.
	QueryReverse bool

	// Positions appends hit positions and covered bases to kept headers.
	Positions bool
}

// Totals summarize the reads a Scanner has seen.
type Totals struct {
	Reads int
	Kept  int
	Hits  int64
}

// Scanner streams reads against an Index. Reads are numbered from 0 in
// the order they are scanned, across all files.
type Scanner struct {
	idx    *Index
	opts   ScanOptions
	stats  stats.Collector
	totals Totals

	seq []byte
	hdr []byte
}

// NewScanner returns a Scanner over idx. A nil collector discards metrics.
func NewScanner(idx *Index, opts ScanOptions, st stats.Collector) *Scanner {
	if st == nil {
		st = stats.NewNoop()
	}
	return &Scanner{idx: idx, opts: opts, stats: st}
}

// Totals returns the running totals.
func (s *Scanner) Totals() Totals { return s.totals }

// Keep reports whether a read with m is within the thresholds.
func (s *Scanner) Keep(m Match) bool {
	p := m.Percent()
	return p > s.opts.Min && p <= s.opts.Max
}

// ScanFile scans every record of path. When w is not nil, kept records are
// written to it as FASTA, the match summary appended to their header.
func (s *Scanner) ScanFile(ctx context.Context, path string, w io.Writer) error {
	var bw *bufio.Writer
	if w != nil {
		bw = bufio.NewWriterSize(w, 64*1024)
	}
	var reads, kept, hits int64
	err := seqio.ForEachRecord(ctx, path, func(rec seqio.Record) error {
		m := s.idx.Scan(rec.Seq, s.totals.Reads, s.opts.QueryReverse)
		s.totals.Reads++
		s.totals.Hits += int64(len(m.Hits))
		reads++
		hits += int64(len(m.Hits))
		s.stats.ObserveHistogram(stats.MetricSharedKmersPct, m.Percent())
		if !s.Keep(m) {
			return nil
		}
		s.totals.Kept++
		kept++
		if bw == nil {
			return nil
		}
		return s.write(bw, rec, m)
	})
	s.stats.IncCounter(stats.MetricReadsScanned, reads)
	s.stats.IncCounter(stats.MetricReadsKept, kept)
	s.stats.IncCounter(stats.MetricKmerHits, hits)
	if err != nil {
		return err
	}
	if bw != nil {
		return bw.Flush()
	}
	return nil
}

func (s *Scanner) write(bw *bufio.Writer, rec seqio.Record, m Match) error {
	s.hdr = append(s.hdr[:0], '>')
	s.hdr = append(s.hdr, rec.Header...)
	s.hdr = m.AppendSummary(s.hdr, s.opts.Positions)
	s.hdr = append(s.hdr, '\n')
	if _, err := bw.Write(s.hdr); err != nil {
		return err
	}
	seq := rec.Seq
	if s.opts.QueryReverse {
		s.seq = dna.AppendRevComp(s.seq[:0], rec.Seq)
		seq = s.seq
	}
	if _, err := bw.Write(seq); err != nil {
		return err
	}
	return bw.WriteByte('\n')
}
