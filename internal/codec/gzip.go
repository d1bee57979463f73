package codec

import (
	"io"

	"github.com/klauspost/pgzip"
)

// Gzip decodes and encodes gzip streams with pgzip, which splits the work
// into blocks handled on separate goroutines.
type Gzip struct{}

var _ Codec = Gzip{}

func (Gzip) Reader(r io.Reader) (io.ReadCloser, error) {
	return pgzip.NewReader(r)
}

func (Gzip) Writer(w io.Writer) (io.WriteCloser, error) {
	return pgzip.NewWriter(w), nil
}

// Extension returns "gz".
func (Gzip) Extension() string { return "gz" }
