package codec

import (
	"bytes"
	"io"
	"testing"
)

func roundTrip(t *testing.T, c Codec, original []byte) []byte {
	t.Helper()
	var compressed bytes.Buffer
	writer, err := c.Writer(&compressed)
	if err != nil {
		t.Fatalf("Writer() error = %v", err)
	}
	if _, err := writer.Write(original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reader, err := c.Reader(&compressed)
	if err != nil {
		t.Fatalf("Reader() error = %v", err)
	}
	got, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if err := reader.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return got
}

func TestCodecs_RoundTrip(t *testing.T) {
	original := bytes.Repeat([]byte(">r\nACGTACGTTTGA\n"), 5000)
	for _, c := range []Codec{Plain{}, Gzip{}, Zstd{}} {
		t.Run(c.Extension(), func(t *testing.T) {
			if got := roundTrip(t, c, original); !bytes.Equal(got, original) {
				t.Errorf("round-trip mismatch: got %d bytes, want %d", len(got), len(original))
			}
		})
	}
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"reads.fq.gz", "gz"},
		{"reads.fa.zst", "zst"},
		{"reads.fa", ""},
		{"-", ""},
	}
	for _, tt := range tests {
		if got := ForPath(tt.path).Extension(); got != tt.want {
			t.Errorf("ForPath(%q).Extension() = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	var gz bytes.Buffer
	w, _ := Gzip{}.Writer(&gz)
	_, _ = w.Write([]byte(">a\nA\n"))
	_ = w.Close()

	var zs bytes.Buffer
	w, _ = Zstd{}.Writer(&zs)
	_, _ = w.Write([]byte(">a\nA\n"))
	_ = w.Close()

	if c := Detect(gz.Bytes()[:MagicLen]); c == nil || c.Extension() != "gz" {
		t.Errorf("Detect(gzip) = %v", c)
	}
	if c := Detect(zs.Bytes()[:MagicLen]); c == nil || c.Extension() != "zst" {
		t.Errorf("Detect(zstd) = %v", c)
	}
	if c := Detect([]byte(">a\nA")); c != nil {
		t.Errorf("Detect(plain) = %v, want nil", c)
	}
	if c := Detect(nil); c != nil {
		t.Errorf("Detect(nil) = %v, want nil", c)
	}
}

func TestGzip_Reader_InvalidData(t *testing.T) {
	if _, err := (Gzip{}).Reader(bytes.NewReader([]byte("not gzip data"))); err == nil {
		t.Error("Reader() expected error for invalid gzip data, got nil")
	}
}
