// Package kmerindex finds the reads that share k-mers with a reference set.
//
// An Index holds the distinct k-mers of a FASTA/FASTQ file, in canonical
// form unless it is stranded. Reads are then scanned window by window; the
// share of windows whose k-mer is indexed decides whether a read is kept,
// and every hit is tallied on the k-mer it matched.
package kmerindex

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"

	"seqsample/internal/dna"
	"seqsample/internal/seqio"
)

// ErrInvalidOptions reports unusable index settings.
var ErrInvalidOptions = errors.New("invalid k-mer index options")

// Options control how k-mers are indexed and looked up.
type Options struct {
	K int

	// Stranded keeps k-mers as written; otherwise a k-mer and its reverse
	// complement are the same entry, stored in the canonical form of Ordering.
	Stranded bool
	Ordering dna.Ordering

	// SkipLowComplexity drops k-mers whose Shannon entropy is below 1 bit.
	SkipLowComplexity bool

	// RecordPositions keeps every hit (read, position, strand) per k-mer
	// instead of a bare count.
	RecordPositions bool
}

func (o Options) Validate() error {
	if o.K <= 0 {
		return fmt.Errorf("%w: k must be > 0, got %d", ErrInvalidOptions, o.K)
	}
	return nil
}

// Hit is one occurrence of an indexed k-mer in a read.
type Hit struct {
	Read     int
	Position int
	Forward  bool
}

type entry struct {
	count int
	hits  []Hit
}

// Index maps k-mers to their tallies. It is not safe for concurrent use.
type Index struct {
	opts    Options
	entries map[string]*entry

	upper []byte // scanned read, upper-cased
	rc    []byte // reverse complement of the current window
}

// New returns an empty index.
func New(opts Options) (*Index, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Index{
		opts:    opts,
		entries: make(map[string]*entry),
		rc:      make([]byte, 0, opts.K),
	}, nil
}

// Build indexes every k-mer of the records in path.
func Build(ctx context.Context, path string, opts Options) (*Index, error) {
	idx, err := New(opts)
	if err != nil {
		return nil, err
	}
	err = seqio.ForEach(ctx, path, func(seq []byte) error {
		idx.Add(seq)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", path, err)
	}
	return idx, nil
}

// Add indexes the k-mers of seq. Letters are upper-cased first; windows
// holding anything but A, C, G or T are skipped.
func (x *Index) Add(seq []byte) {
	k := x.opts.K
	seq = bytes.ToUpper(seq)
	for i := 0; i+k <= len(seq); {
		kmer := seq[i : i+k]
		if j := firstNonACGT(kmer); j >= 0 {
			i += j + 1
			continue
		}
		i++
		if x.opts.SkipLowComplexity && entropy(kmer) < 1 {
			continue
		}
		key, _ := x.key(kmer)
		if _, ok := x.entries[string(key)]; !ok {
			x.entries[string(key)] = &entry{}
		}
	}
}

// Len returns the number of distinct k-mers.
func (x *Index) Len() int { return len(x.entries) }

// K returns the k-mer size.
func (x *Index) K() int { return x.opts.K }

// key returns the lookup form of an upper-case k-mer and whether that is
// the k-mer as read. The result may alias x.rc.
func (x *Index) key(kmer []byte) ([]byte, bool) {
	if x.opts.Stranded {
		return kmer, true
	}
	x.rc = dna.AppendRevComp(x.rc[:0], kmer)
	if x.opts.Ordering.Less(x.rc, kmer) {
		return x.rc, false
	}
	return kmer, true
}

func firstNonACGT(kmer []byte) int {
	for i, c := range kmer {
		switch c {
		case 'A', 'C', 'G', 'T':
		default:
			return i
		}
	}
	return -1
}

// entropy is the Shannon entropy of the bytes of s, in bits.
func entropy(s []byte) float64 {
	var freq [256]int
	for _, c := range s {
		freq[c]++
	}
	var h float64
	n := float64(len(s))
	for _, f := range freq {
		if f == 0 {
			continue
		}
		p := float64(f) / n
		h -= p * math.Log2(p)
	}
	return h
}
