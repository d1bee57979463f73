// Package seqio streams nucleotide sequences out of FASTA and FASTQ files.
package seqio

import (
	"bufio"
	"errors"
	"io"
)

// ErrUnsupportedFormat is returned when an input is neither FASTA nor FASTQ.
var ErrUnsupportedFormat = errors.New("unsupported format: input is neither FASTA nor FASTQ")

// Format is the record layout of a sequence stream.
type Format int

const (
	Unrecognized Format = iota
	FASTA
	FASTQ
)

func (f Format) String() string {
	switch f {
	case FASTA:
		return "fasta"
	case FASTQ:
		return "fastq"
	default:
		return "unrecognized"
	}
}

func classify(first byte) Format {
	switch first {
	case '>':
		return FASTA
	case '@':
		return FASTQ
	default:
		return Unrecognized
	}
}

// Sniff classifies rs by its first byte and rewinds it to the start.
// An empty stream yields (Unrecognized, io.EOF).
func Sniff(rs io.ReadSeeker) (Format, error) {
	var b [1]byte
	n, err := io.ReadFull(rs, b[:])
	if _, serr := rs.Seek(0, io.SeekStart); serr != nil {
		return Unrecognized, serr
	}
	if n == 0 {
		if err == nil || errors.Is(err, io.ErrUnexpectedEOF) {
			err = io.EOF
		}
		return Unrecognized, err
	}
	return classify(b[0]), nil
}

// sniffPeek is Sniff for streams that cannot seek, such as decompressors
// and stdin. The byte stays buffered in br.
func sniffPeek(br *bufio.Reader) (Format, error) {
	b, err := br.Peek(1)
	if len(b) == 0 {
		if err == nil {
			err = io.EOF
		}
		return Unrecognized, err
	}
	return classify(b[0]), nil
}
