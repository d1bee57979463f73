package codec

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// Zstd decodes and encodes zstandard streams.
type Zstd struct{}

var _ Codec = Zstd{}

func (Zstd) Reader(r io.Reader) (io.ReadCloser, error) {
	decoder, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return decoder.IOReadCloser(), nil
}

func (Zstd) Writer(w io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriter(w)
}

// Extension returns "zst".
func (Zstd) Extension() string { return "zst" }
