package kmerindex

import (
	"bufio"
	"io"
	"sort"
	"strconv"
)

// WriteCounts writes one line per indexed k-mer hit at least threshold
// times, sorted by k-mer: "<kmer> <count>", or with recorded positions
// "<kmer> (read,position,forward) ...". It returns the number of lines.
func (x *Index) WriteCounts(w io.Writer, threshold int) (int, error) {
	keys := make([]string, 0, len(x.entries))
	for k, e := range x.entries {
		if e.count >= threshold {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	bw := bufio.NewWriter(w)
	var line []byte
	for _, k := range keys {
		e := x.entries[k]
		line = append(line[:0], k...)
		if x.opts.RecordPositions {
			for _, h := range e.hits {
				line = append(line, " ("...)
				line = strconv.AppendInt(line, int64(h.Read), 10)
				line = append(line, ',')
				line = strconv.AppendInt(line, int64(h.Position), 10)
				line = append(line, ',')
				line = strconv.AppendBool(line, h.Forward)
				line = append(line, ')')
			}
		} else {
			line = append(line, ' ')
			line = strconv.AppendInt(line, int64(e.count), 10)
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return 0, err
		}
	}
	return len(keys), bw.Flush()
}

// Count returns how often kmer was hit, and whether it is indexed. kmer is
// looked up the way reads are: upper-cased and, unless the index is
// stranded, canonicalized.
func (x *Index) Count(kmer string) (int, bool) {
	if len(kmer) != x.opts.K {
		return 0, false
	}
	x.upper = append(x.upper[:0], kmer...)
	for i, c := range x.upper {
		if 'a' <= c && c <= 'z' {
			x.upper[i] = c - ('a' - 'A')
		}
	}
	key, _ := x.key(x.upper)
	e, ok := x.entries[string(key)]
	if !ok {
		return 0, false
	}
	return e.count, true
}
