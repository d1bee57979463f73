package kmercount

import (
	"bytes"
	"strings"
	"testing"

	"seqsample/internal/dna"
)

func TestConvertCanonical_Kmtricks(t *testing.T) {
	in := "GA 3\nAG\t10\n\nACGT 1\nCAGT 7\n"
	var out bytes.Buffer
	n, err := ConvertCanonical(strings.NewReader(in), &out, dna.Kmtricks)
	if err != nil {
		t.Fatalf("ConvertCanonical: %v", err)
	}
	want := "TC 3\nAG 10\nACGT 1\nACTG 7\n"
	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
	if n != 4 {
		t.Errorf("n = %d, want 4", n)
	}
}

func TestConvertCanonical_Lex(t *testing.T) {
	var out bytes.Buffer
	if _, err := ConvertCanonical(strings.NewReader("GA 3\nTTT 2\n"), &out, dna.Lexicographic); err != nil {
		t.Fatalf("ConvertCanonical: %v", err)
	}
	if want := "GA 3\nAAA 2\n"; out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}

func TestConvertCanonical_BadLine(t *testing.T) {
	_, err := ConvertCanonical(strings.NewReader("AC 1\nACGT\n"), &bytes.Buffer{}, dna.Kmtricks)
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("err = %v, want a line 2 error", err)
	}
}
