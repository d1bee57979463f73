package cliutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPositionals(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.fa")
	b := filepath.Join(dir, "b.fq.gz")
	_ = os.WriteFile(a, []byte(">a\nA\n"), 0o644)
	_ = os.WriteFile(b, []byte("x"), 0o644)
	got, err := ExpandPositionals([]string{filepath.Join(dir, "*.fa"), b, "-"})
	if err != nil || len(got) != 3 || got[0] != a || got[1] != b || got[2] != "-" {
		t.Fatalf("expand: err=%v got=%v", err, got)
	}
}

func TestExpandPositionals_NoMatch(t *testing.T) {
	if _, err := ExpandPositionals([]string{filepath.Join(t.TempDir(), "*.fq")}); err == nil {
		t.Fatal("expected error when a glob matches nothing")
	}
}

func TestReadFileList(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "list.txt")
	if err := os.WriteFile(fn, []byte("a.fa\n\n  b.fq.gz \r\nc.fa"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ReadFileList(fn)
	if err != nil {
		t.Fatalf("ReadFileList: %v", err)
	}
	if len(got) != 3 || got[0] != "a.fa" || got[1] != "b.fq.gz" || got[2] != "c.fa" {
		t.Errorf("got %q", got)
	}
	if _, err := ReadFileList(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for a missing list")
	}
}
