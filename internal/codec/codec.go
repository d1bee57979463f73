// Package codec provides the stream compression formats accepted for
// sequence input and FASTA output.
package codec

import (
	"bytes"
	"io"
	"strings"
)

// Codec provides compression and decompression functionality.
type Codec interface {
	// Reader wraps r to decompress data read from it.
	Reader(r io.Reader) (io.ReadCloser, error)
	// Writer wraps w to compress data written to it.
	Writer(w io.Writer) (io.WriteCloser, error)
	// Extension returns the file extension without dot (e.g., "zst", "gz").
	// Returns empty string for no compression.
	Extension() string
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// MagicLen is the number of leading bytes Detect needs to see.
const MagicLen = 4

// ForPath picks a codec from the file suffix. Unknown suffixes map to Plain.
func ForPath(path string) Codec {
	switch {
	case strings.HasSuffix(path, ".gz"):
		return Gzip{}
	case strings.HasSuffix(path, ".zst"):
		return Zstd{}
	default:
		return Plain{}
	}
}

// Detect picks a codec from the leading bytes of a stream, or returns nil
// when they match no known compression format.
func Detect(head []byte) Codec {
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return Gzip{}
	case bytes.HasPrefix(head, zstdMagic):
		return Zstd{}
	default:
		return nil
	}
}

// Plain passes data through unchanged.
type Plain struct{}

var _ Codec = Plain{}

func (Plain) Reader(r io.Reader) (io.ReadCloser, error) {
	if rc, ok := r.(io.ReadCloser); ok {
		return rc, nil
	}
	return io.NopCloser(r), nil
}

func (Plain) Writer(w io.Writer) (io.WriteCloser, error) {
	if wc, ok := w.(io.WriteCloser); ok {
		return wc, nil
	}
	return nopWriteCloser{w}, nil
}

func (Plain) Extension() string { return "" }

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
