// Package kmercount rewrites k-mer count tables into canonical form.
package kmercount

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"seqsample/internal/dna"
)

// ConvertCanonical reads "kmer count" lines from r and writes each k-mer in
// its canonical form under ord, followed by its count, to w. Blank lines are
// skipped; any other line must hold exactly two fields. It returns the
// number of lines written.
func ConvertCanonical(r io.Reader, w io.Writer, ord dna.Ordering) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	bw := bufio.NewWriter(w)

	n, lineNo := 0, 0
	for sc.Scan() {
		lineNo++
		fields := bytes.Fields(sc.Bytes())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return n, fmt.Errorf("line %d: want \"kmer count\", got %d fields", lineNo, len(fields))
		}
		if _, err := bw.Write(ord.Canonical(fields[0])); err != nil {
			return n, err
		}
		if err := bw.WriteByte(' '); err != nil {
			return n, err
		}
		if _, err := bw.Write(fields[1]); err != nil {
			return n, err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return n, err
		}
		n++
	}
	if err := sc.Err(); err != nil {
		return n, fmt.Errorf("line %d: %w", lineNo+1, err)
	}
	return n, bw.Flush()
}
