package kmerindex

import (
	"math"
	"strconv"

	"seqsample/internal/dna"
)

// Match is the outcome of scanning one read against an Index.
type Match struct {
	// Windows is the number of k-mer positions in the read, 0 when the read
	// is shorter than k.
	Windows int
	// Hits lists the positions whose k-mer is indexed, in read order.
	Hits []Hit
	// Covered counts the bases under at least one hit.
	Covered int
}

// Percent is the share of windows whose k-mer is indexed, in percent.
// A read without windows scores 0.
func (m Match) Percent() float64 {
	if m.Windows == 0 {
		return 0
	}
	return 100 * float64(len(m.Hits)) / float64(m.Windows)
}

// AppendSummary appends " <hits> <percent>" to dst, the percentage rounded
// to five decimals. With positions it continues with every hit position,
// negated for reverse-strand hits, and the covered base count in
// parentheses: " 3 6.97674 4 -5 -6 (7)".
func (m Match) AppendSummary(dst []byte, positions bool) []byte {
	dst = append(dst, ' ')
	dst = strconv.AppendInt(dst, int64(len(m.Hits)), 10)
	dst = append(dst, ' ')
	dst = strconv.AppendFloat(dst, math.Round(m.Percent()*1e5)/1e5, 'f', -1, 64)
	if !positions {
		return dst
	}
	for _, h := range m.Hits {
		dst = append(dst, ' ')
		if !h.Forward {
			dst = append(dst, '-')
		}
		dst = strconv.AppendInt(dst, int64(h.Position), 10)
	}
	dst = append(dst, " ("...)
	dst = strconv.AppendInt(dst, int64(m.Covered), 10)
	return append(dst, ')')
}

// Scan looks up every k-mer window of read and tallies each hit on the
// indexed k-mer, attributing it to read number id. With queryReverse the
// reverse complement of read is scanned and positions refer to it.
func (x *Index) Scan(read []byte, id int, queryReverse bool) Match {
	k := x.opts.K
	if queryReverse {
		x.upper = dna.AppendRevComp(x.upper[:0], read)
	} else {
		x.upper = append(x.upper[:0], read...)
	}
	seq := x.upper
	for i, c := range seq {
		if 'a' <= c && c <= 'z' {
			seq[i] = c - ('a' - 'A')
		}
	}

	var m Match
	if len(seq) < k {
		return m
	}
	m.Windows = len(seq) - k + 1
	firstUncovered := 0
	for i := 0; i < m.Windows; i++ {
		key, forward := x.key(seq[i : i+k])
		e, ok := x.entries[string(key)]
		if !ok {
			continue
		}
		h := Hit{Read: id, Position: i, Forward: forward}
		m.Hits = append(m.Hits, h)
		if firstUncovered < i {
			m.Covered += k
		} else {
			m.Covered += i + k - firstUncovered
		}
		firstUncovered = i + k

		e.count++
		if x.opts.RecordPositions {
			e.hits = append(e.hits, h)
		}
	}
	return m
}
