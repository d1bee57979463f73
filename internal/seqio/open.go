package seqio

import (
	"bufio"
	"io"
	"os"

	"seqsample/internal/codec"
)

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// OpenRaw opens path ("-" = stdin) and unwraps its compression, chosen by
// the .gz/.zst suffix or, failing that, by magic bytes. Uncompressed files
// are returned as the *os.File itself.
func OpenRaw(path string) (io.ReadCloser, error) {
	if path == "-" {
		br := bufio.NewReader(os.Stdin)
		c := codec.Codec(codec.Plain{})
		if head, _ := br.Peek(codec.MagicLen); len(head) > 0 {
			if d := codec.Detect(head); d != nil {
				c = d
			}
		}
		return wrap(br, io.NopCloser(os.Stdin), c)
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	c := codec.ForPath(path)
	if _, plain := c.(codec.Plain); plain {
		var head [codec.MagicLen]byte
		n, _ := io.ReadFull(fh, head[:])
		if _, err := fh.Seek(0, io.SeekStart); err != nil {
			_ = fh.Close()
			return nil, err
		}
		if c = codec.Detect(head[:n]); c == nil {
			return fh, nil
		}
	}
	rc, err := wrap(fh, fh, c)
	if err != nil {
		_ = fh.Close()
		return nil, err
	}
	return rc, nil
}

// wrap decodes r with c; Close releases both the decoder and owner.
func wrap(r io.Reader, owner io.Closer, c codec.Codec) (io.ReadCloser, error) {
	dr, err := c.Reader(r)
	if err != nil {
		return nil, err
	}
	return &multiReadCloser{Reader: dr, closers: []io.Closer{dr, owner}}, nil
}

// openStream opens path and classifies its content. Seekable plain files
// go through Sniff; decoded streams are peeked instead. An empty input
// returns io.EOF together with a valid stream.
func openStream(path string) (io.ReadCloser, Format, error) {
	rc, err := OpenRaw(path)
	if err != nil {
		return nil, Unrecognized, err
	}
	if fh, ok := rc.(*os.File); ok {
		f, err := Sniff(fh)
		if err != nil && err != io.EOF {
			_ = fh.Close()
			return nil, Unrecognized, err
		}
		return fh, f, err
	}
	br := bufio.NewReader(rc)
	f, err := sniffPeek(br)
	if err != nil && err != io.EOF {
		_ = rc.Close()
		return nil, Unrecognized, err
	}
	return &multiReadCloser{Reader: br, closers: []io.Closer{rc}}, f, err
}
