package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"seqsample/internal/codec"
)

// FASTAWriter writes one record per sequence with the zero-based record
// index as header:
//
//	>0
//	ACGT
//	>1
//	...
type FASTAWriter struct {
	bw   *bufio.Writer
	dst  io.Closer
	next int
	hdr  []byte
}

// NewFASTAWriter writes records to w. Close flushes but does not close w.
func NewFASTAWriter(w io.Writer) *FASTAWriter {
	return &FASTAWriter{bw: bufio.NewWriterSize(w, 64*1024)}
}

// Create opens path for writing ("-" = stdout). Paths ending in .gz or .zst
// are compressed with the matching codec.
func Create(path string) (*FASTAWriter, error) {
	wc, err := CreateFile(path)
	if err != nil {
		return nil, err
	}
	fw := NewFASTAWriter(wc)
	fw.dst = wc
	return fw, nil
}

// CreateFile opens path for writing through the codec its suffix selects.
// "-" is stdout, which Close leaves open.
func CreateFile(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	fh, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	cw, err := codec.ForPath(path).Writer(fh)
	if err != nil {
		_ = fh.Close()
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return &fileWriter{WriteCloser: cw, fh: fh}, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// fileWriter closes the encoder before the file under it.
type fileWriter struct {
	io.WriteCloser
	fh *os.File
}

func (w *fileWriter) Close() error {
	err := w.WriteCloser.Close()
	if cerr := w.fh.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// Write appends seq as the next record.
func (w *FASTAWriter) Write(seq []byte) error {
	w.hdr = append(w.hdr[:0], '>')
	w.hdr = strconv.AppendInt(w.hdr, int64(w.next), 10)
	w.hdr = append(w.hdr, '\n')
	if _, err := w.bw.Write(w.hdr); err != nil {
		return err
	}
	if _, err := w.bw.Write(seq); err != nil {
		return err
	}
	if err := w.bw.WriteByte('\n'); err != nil {
		return err
	}
	w.next++
	return nil
}

// Count returns the number of records written so far.
func (w *FASTAWriter) Count() int { return w.next }

// Close flushes buffered records and closes what Create opened.
func (w *FASTAWriter) Close() error {
	err := w.bw.Flush()
	if w.dst != nil {
		if cerr := w.dst.Close(); cerr != nil && err == nil {
			err = cerr
		}
		w.dst = nil
	}
	return err
}
