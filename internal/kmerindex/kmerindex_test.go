package kmerindex

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seqsample/internal/dna"
)

func newIndex(t *testing.T, opts Options, seqs ...string) *Index {
	t.Helper()
	idx, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, s := range seqs {
		idx.Add([]byte(s))
	}
	return idx
}

func write(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func TestMatchSummary(t *testing.T) {
	// 47 bases, k=5: 43 windows.
	m := Match{
		Windows: 43,
		Hits: []Hit{
			{Position: 4, Forward: true},
			{Position: 5},
			{Position: 6},
		},
		Covered: 7,
	}
	if got := string(m.AppendSummary(nil, false)); got != " 3 6.97674" {
		t.Errorf("count summary = %q", got)
	}
	if got := string(m.AppendSummary(nil, true)); got != " 3 6.97674 4 -5 -6 (7)" {
		t.Errorf("positional summary = %q", got)
	}
	var empty Match
	if got := string(empty.AppendSummary([]byte(">r"), true)); got != ">r 0 0 (0)" {
		t.Errorf("empty summary = %q", got)
	}
}

func TestScan_CoveredBases(t *testing.T) {
	idx := newIndex(t, Options{K: 5, Stranded: true}, "AAAAAAAA", "CCCCC")
	m := idx.Scan([]byte("GAAAAAAGCCCCC"), 0, false)
	// AAAAA at 1 and 2 overlap (6 bases), CCCCC at 8 stands alone.
	if len(m.Hits) != 3 || m.Windows != 9 {
		t.Fatalf("hits=%d windows=%d", len(m.Hits), m.Windows)
	}
	if m.Covered != 11 {
		t.Errorf("covered = %d, want 11", m.Covered)
	}
}

func TestScan_Canonical(t *testing.T) {
	idx := newIndex(t, Options{K: 3}, "ACG")
	if idx.Len() != 1 {
		t.Fatalf("Len = %d, want 1", idx.Len())
	}
	m := idx.Scan([]byte("CGTTT"), 7, false)
	want := []Hit{{Read: 7, Position: 0, Forward: false}}
	if len(m.Hits) != 1 || m.Hits[0] != want[0] {
		t.Fatalf("hits = %+v, want %+v", m.Hits, want)
	}
	if got := string(m.AppendSummary(nil, true)); got != " 1 33.33333 -0 (3)" {
		t.Errorf("summary = %q", got)
	}
	if m := idx.Scan([]byte("acg"), 8, false); len(m.Hits) != 1 || !m.Hits[0].Forward {
		t.Errorf("lower-case read: hits = %+v", m.Hits)
	}
	if n, ok := idx.Count("CGT"); !ok || n != 2 {
		t.Errorf("Count(CGT) = %d, %v; want 2, true", n, ok)
	}
}

func TestScan_Stranded(t *testing.T) {
	idx := newIndex(t, Options{K: 3, Stranded: true}, "ACG")
	if m := idx.Scan([]byte("CGTTT"), 0, false); len(m.Hits) != 0 {
		t.Errorf("reverse strand matched a stranded index: %+v", m.Hits)
	}
	m := idx.Scan([]byte("AACGT"), 0, false)
	if len(m.Hits) != 1 || m.Hits[0].Position != 1 || !m.Hits[0].Forward {
		t.Errorf("forward hits = %+v", m.Hits)
	}
	// Reverse complement of AACGT is ACGTT.
	m = idx.Scan([]byte("AACGT"), 0, true)
	if len(m.Hits) != 1 || m.Hits[0].Position != 0 {
		t.Errorf("query-reverse hits = %+v", m.Hits)
	}
	if _, ok := idx.Count("CGT"); ok {
		t.Error("stranded index should not canonicalize lookups")
	}
}

func TestScan_ShortRead(t *testing.T) {
	idx := newIndex(t, Options{K: 4}, "ACGT")
	m := idx.Scan([]byte("ACG"), 0, false)
	if m.Windows != 0 || len(m.Hits) != 0 || m.Percent() != 0 {
		t.Errorf("short read: %+v, percent %v", m, m.Percent())
	}
}

func TestAdd_SkipsNonACGT(t *testing.T) {
	idx := newIndex(t, Options{K: 3}, "ACNGTA")
	if idx.Len() != 1 {
		t.Fatalf("Len = %d, want 1", idx.Len())
	}
	for _, k := range []string{"GTA", "TAC", "gta"} {
		if _, ok := idx.Count(k); !ok {
			t.Errorf("%s not indexed", k)
		}
	}
}

func TestAdd_LowComplexity(t *testing.T) {
	idx := newIndex(t, Options{K: 4, SkipLowComplexity: true}, "AAAACC")
	if idx.Len() != 1 {
		t.Fatalf("Len = %d, want 1", idx.Len())
	}
	if _, ok := idx.Count("AACC"); !ok {
		t.Error("AACC (entropy 1) should be kept")
	}
	if n := newIndex(t, Options{K: 4}, "AAAACC").Len(); n != 3 {
		t.Errorf("without filter Len = %d, want 3", n)
	}
}

func TestKmtricksOrderingKeys(t *testing.T) {
	// TC < GA under A<C<T<G, so TC is the kmtricks key of GA.
	idx := newIndex(t, Options{K: 2, Ordering: dna.Kmtricks, RecordPositions: true}, "GA")
	m := idx.Scan([]byte("TC"), 0, false)
	if len(m.Hits) != 1 || !m.Hits[0].Forward {
		t.Fatalf("hits = %+v", m.Hits)
	}
	var out bytes.Buffer
	if _, err := idx.WriteCounts(&out, 0); err != nil {
		t.Fatal(err)
	}
	if out.String() != "TC (0,0,true)\n" {
		t.Errorf("counts = %q", out.String())
	}
}

func TestWriteCounts(t *testing.T) {
	idx := newIndex(t, Options{K: 3}, "CCC", "AAA")
	idx.Scan([]byte("AAAA"), 0, false)
	idx.Scan([]byte("GGG"), 1, false)

	var out bytes.Buffer
	n, err := idx.WriteCounts(&out, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 || out.String() != "AAA 2\nCCC 1\n" {
		t.Errorf("threshold 0: n=%d out=%q", n, out.String())
	}

	out.Reset()
	if n, _ := idx.WriteCounts(&out, 2); n != 1 || out.String() != "AAA 2\n" {
		t.Errorf("threshold 2: n=%d out=%q", n, out.String())
	}
}

func TestWriteCounts_Positions(t *testing.T) {
	idx := newIndex(t, Options{K: 3, RecordPositions: true}, "CCC", "AAA")
	idx.Scan([]byte("AAAA"), 0, false)
	idx.Scan([]byte("GGG"), 1, false)

	var out bytes.Buffer
	if _, err := idx.WriteCounts(&out, 0); err != nil {
		t.Fatal(err)
	}
	want := "AAA (0,0,true) (0,1,true)\nCCC (1,0,false)\n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

func TestBuild(t *testing.T) {
	fn := write(t, "kmers.fa", ">a\nACGTA\n>b\nTACGT\n")
	idx, err := Build(context.Background(), fn, Options{K: 5})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// TACGT is the reverse complement of ACGTA.
	if idx.Len() != 1 || idx.K() != 5 {
		t.Errorf("Len=%d K=%d", idx.Len(), idx.K())
	}

	if _, err := Build(context.Background(), fn, Options{}); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("k=0: err = %v, want ErrInvalidOptions", err)
	}
	if _, err := Build(context.Background(), filepath.Join(t.TempDir(), "missing.fa"), Options{K: 3}); err == nil {
		t.Error("expected error for a missing file")
	}
}

const reads = ">r1 first\nAAAAA\n>r2\nCCCCC\n>r3\nTTTAC\n>r4\nAA\n"

type recordingStats struct {
	counters     map[string]int64
	observations int
}

func (r *recordingStats) IncCounter(name string, delta int64) {
	if r.counters == nil {
		r.counters = make(map[string]int64)
	}
	r.counters[name] += delta
}
func (r *recordingStats) SetGauge(string, int64)            {}
func (r *recordingStats) ObserveHistogram(string, float64) { r.observations++ }

func TestScanner(t *testing.T) {
	fn := write(t, "reads.fa", reads)
	cases := []struct {
		name string
		opts ScanOptions
		want string
	}{
		{"any hit", ScanOptions{Max: 100}, ">r1 first 3 100\nAAAAA\n>r3 1 33.33333\nTTTAC\n"},
		{"above half", ScanOptions{Min: 50, Max: 100}, ">r1 first 3 100\nAAAAA\n"},
		{"at most half", ScanOptions{Max: 50}, ">r3 1 33.33333\nTTTAC\n"},
		{"no hits", ScanOptions{Min: -1, Max: 0}, ">r2 0 0\nCCCCC\n>r4 0 0\nAA\n"},
		{
			"query reverse with positions",
			ScanOptions{Max: 100, QueryReverse: true, Positions: true},
			">r1 first 3 100 -0 -1 -2 (5)\nTTTTT\n>r3 1 33.33333 2 (3)\nGTAAA\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			idx := newIndex(t, Options{K: 3}, "AAA")
			var out bytes.Buffer
			s := NewScanner(idx, tc.opts, nil)
			if err := s.ScanFile(context.Background(), fn, &out); err != nil {
				t.Fatalf("ScanFile: %v", err)
			}
			if out.String() != tc.want {
				t.Errorf("got %q, want %q", out.String(), tc.want)
			}
			if s.Totals().Reads != 4 {
				t.Errorf("reads = %d, want 4", s.Totals().Reads)
			}
		})
	}
}

func TestScanner_NumbersReadsAcrossFiles(t *testing.T) {
	idx := newIndex(t, Options{K: 3, RecordPositions: true}, "AAA")
	st := &recordingStats{}
	s := NewScanner(idx, ScanOptions{Max: 100}, st)
	for _, name := range []string{"a.fa", "b.fq"} {
		data := reads
		if strings.HasSuffix(name, ".fq") {
			data = "@q1\nTTTG\n+\n!!!!\n"
		}
		if err := s.ScanFile(context.Background(), write(t, name, data), nil); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}

	want := Totals{Reads: 5, Kept: 3, Hits: 5}
	if s.Totals() != want {
		t.Errorf("totals = %+v, want %+v", s.Totals(), want)
	}
	var out bytes.Buffer
	if _, err := idx.WriteCounts(&out, 0); err != nil {
		t.Fatal(err)
	}
	// The FASTQ read is read 4.
	if !strings.HasSuffix(strings.TrimSpace(out.String()), "(4,0,false)") {
		t.Errorf("counts = %q", out.String())
	}
	if st.counters["seqsample_match_reads_kept_total"] != 3 || st.observations != 5 {
		t.Errorf("stats: %+v, %d observations", st.counters, st.observations)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestScanner_WriteError(t *testing.T) {
	idx := newIndex(t, Options{K: 3}, "AAA")
	s := NewScanner(idx, ScanOptions{Max: 100}, nil)
	err := s.ScanFile(context.Background(), write(t, "reads.fa", reads), failingWriter{})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("err = %v, want disk full", err)
	}
}

func TestScanner_Canceled(t *testing.T) {
	idx := newIndex(t, Options{K: 3}, "AAA")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewScanner(idx, ScanOptions{Max: 100}, nil)
	if err := s.ScanFile(ctx, write(t, "reads.fa", reads), nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
