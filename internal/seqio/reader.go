package seqio

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)

// Reader is a forward-only, single-pass iterator over the sequences of one
// FASTA or FASTQ stream. Separators and qualities are dropped.
//
//	r, err := seqio.Open(path)
//	...
//	defer r.Close()
//	for r.Next() {
//		use(r.Seq())
//	}
//	if err := r.Err(); err != nil { ... }
//
// The underlying resource is released as soon as Next returns false.
type Reader struct {
	name   string
	rc     io.Closer
	sc     *bufio.Scanner
	format Format

	seq        []byte
	header     []byte
	nextHeader []byte // FASTA: header of the record after the current one
	inRecord   bool // FASTA: a header was read and its sequence is pending
	lineNo   int  // FASTQ: 1-indexed number of the last line read
	started  bool
	done     bool
	err      error
}

// Open opens path for streaming. "-" reads stdin. Files ending in .gz or
// .zst, or starting with their magic bytes, are decompressed on the fly.
// Unrecognized content fails with ErrUnsupportedFormat; an empty input is
// a valid stream with no records.
func Open(path string) (*Reader, error) {
	rc, f, err := openStream(path)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return newReader(rc, path, f, err == io.EOF)
}

// NewReader streams records from r, which is not closed by the Reader.
// name is used in error messages.
func NewReader(r io.Reader, name string) (*Reader, error) {
	br := bufio.NewReader(r)
	f, err := sniffPeek(br)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return newReader(io.NopCloser(br), name, f, err == io.EOF)
}

func newReader(rc io.ReadCloser, name string, f Format, empty bool) (*Reader, error) {
	r := &Reader{name: name, rc: rc, format: f}
	if empty {
		_ = r.finish(nil)
		return r, nil
	}
	if f == Unrecognized {
		_ = rc.Close()
		return nil, fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}
	r.sc = bufio.NewScanner(rc)
	r.sc.Buffer(make([]byte, 64*1024), maxLine)
	return r, nil
}

// Format reports the detected record layout.
func (r *Reader) Format() Format { return r.format }

// Next advances to the next sequence. It returns false at the end of the
// stream or on error; Err distinguishes the two.
func (r *Reader) Next() bool {
	if r.done {
		return false
	}
	switch r.format {
	case FASTA:
		return r.nextFASTA()
	case FASTQ:
		return r.nextFASTQ()
	}
	return r.finish(fmt.Errorf("%s: %w", r.name, ErrUnsupportedFormat))
}

// Each header yields one record, including records with no sequence lines.
func (r *Reader) nextFASTA() bool {
	if !r.started {
		r.started = true
		if !r.sc.Scan() {
			return r.finish(r.sc.Err())
		}
		r.nextHeader = append(r.nextHeader[:0], headerText(r.sc.Bytes())...)
		r.inRecord = true
	}
	if !r.inRecord {
		return r.finish(nil)
	}
	r.header, r.nextHeader = r.nextHeader, r.header[:0]
	r.seq = r.seq[:0]
	for r.sc.Scan() {
		line := r.sc.Bytes()
		if len(line) > 0 && line[0] == '>' {
			r.nextHeader = append(r.nextHeader, headerText(line)...)
			return true
		}
		r.seq = append(r.seq, bytes.TrimSpace(line)...)
	}
	if err := r.sc.Err(); err != nil {
		return r.finish(err)
	}
	r.inRecord = false
	return true
}

func (r *Reader) nextFASTQ() bool {
	for r.sc.Scan() {
		r.lineNo++
		if r.lineNo%4 == 1 {
			r.header = append(r.header[:0], headerText(r.sc.Bytes())...)
		}
		if r.lineNo%4 == 2 {
			r.seq = append(r.seq[:0], bytes.TrimSpace(r.sc.Bytes())...)
			return true
		}
	}
	return r.finish(r.sc.Err())
}

func (r *Reader) finish(err error) bool {
	r.done = true
	r.seq, r.header = nil, nil
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("%s: scan: %w", r.name, err)
	}
	if r.rc != nil {
		if cerr := r.rc.Close(); cerr != nil && r.err == nil {
			r.err = fmt.Errorf("%s: close: %w", r.name, cerr)
		}
		r.rc = nil
	}
	return false
}

// Seq returns the current sequence. The slice is reused by the next call
// to Next; copy it to retain it.
func (r *Reader) Seq() []byte { return r.seq }

// Header returns the header line of the current record without its '>' or
// '@' marker. Like Seq, the slice is reused by the next call to Next.
func (r *Reader) Header() []byte { return r.header }

// headerText strips the record marker and surrounding whitespace.
func headerText(line []byte) []byte {
	if len(line) > 0 {
		line = line[1:]
	}
	return bytes.TrimSpace(line)
}

// Err returns the first error encountered, or nil at a clean end of stream.
func (r *Reader) Err() error { return r.err }

// Close releases the underlying resource. It is safe to call more than once
// and after Next has returned false.
func (r *Reader) Close() error {
	if r.done {
		return nil
	}
	r.finish(nil)
	return r.err
}
