// Package readfilter keeps two-line FASTA records whose header ends in a
// score at or above a threshold.
package readfilter

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// Filter copies records from r to w. Each record is a header line whose
// last whitespace-separated field is a number, followed by one sequence
// line. Records scoring >= threshold are written unchanged (the sequence
// line is trimmed). It returns the number of records kept.
func Filter(r io.Reader, w io.Writer, threshold float64) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)
	bw := bufio.NewWriter(w)

	kept, lineNo := 0, 0
	for sc.Scan() {
		lineNo++
		header := append([]byte(nil), sc.Bytes()...)
		var seq []byte
		if sc.Scan() {
			lineNo++
			seq = bytes.TrimSpace(sc.Bytes())
		}
		fields := bytes.Fields(header)
		if len(fields) == 0 {
			return kept, fmt.Errorf("line %d: empty header", lineNo)
		}
		score, err := strconv.ParseFloat(string(fields[len(fields)-1]), 64)
		if err != nil {
			return kept, fmt.Errorf("line %d: header score: %w", lineNo, err)
		}
		if score < threshold {
			continue
		}
		if _, err := fmt.Fprintf(bw, "%s\n%s\n", header, seq); err != nil {
			return kept, err
		}
		kept++
	}
	if err := sc.Err(); err != nil {
		return kept, err
	}
	return kept, bw.Flush()
}
