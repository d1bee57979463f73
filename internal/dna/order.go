package dna

import (
	"bytes"
	"fmt"
)

// Order is a total order over a small alphabet, stored as a rank per byte.
// Letters of the alphabet rank as the digits '0', '1', ... in both cases;
// every other byte keeps its own value as rank. Punctuation and whitespace
// therefore sort before the letters and other letters after them, as when
// the sequence is translated to digit characters and compared as text.
type Order struct {
	rank [256]byte
}

// NewOrder builds the order in which the bytes of alphabet appear,
// smallest first. alphabet holds at most ten letters.
func NewOrder(alphabet string) *Order {
	if len(alphabet) > 10 {
		panic(fmt.Sprintf("dna: alphabet %q has more than 10 letters", alphabet))
	}
	o := &Order{}
	for i := range o.rank {
		o.rank[i] = byte(i)
	}
	for i := 0; i < len(alphabet); i++ {
		c := alphabet[i]
		r := '0' + byte(i)
		o.rank[c] = r
		o.rank[toLower(c)] = r
		o.rank[toUpper(c)] = r
	}
	return o
}

// Compare compares a and b by rank, returning -1, 0 or +1.
func (o *Order) Compare(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		ra, rb := o.rank[a[i]], o.rank[b[i]]
		if ra != rb {
			if ra < rb {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// Encode maps seq to its ranks.
func (o *Order) Encode(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, c := range seq {
		out[i] = o.rank[c]
	}
	return out
}

func toLower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

func toUpper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// KmtricksOrder ranks A < C < T < G, the order used by the kmtricks k-mer counter.
var KmtricksOrder = NewOrder("ACTG")

// Canonical returns the byte-wise smaller of seq and its reverse complement.
func Canonical(seq []byte) []byte {
	rc := RevComp(seq)
	if bytes.Compare(rc, seq) < 0 {
		return rc
	}
	return seq
}

// CanonicalKmtricks returns the smaller of seq and its reverse complement
// under KmtricksOrder. Only a strictly smaller reverse complement wins: on
// equal ranks seq itself is returned, which kmtricks relies on.
func CanonicalKmtricks(seq []byte) []byte {
	rc := RevComp(seq)
	if KmtricksOrder.Compare(rc, seq) < 0 {
		return rc
	}
	return seq
}

// Ordering selects a canonicalization rule.
type Ordering int

const (
	Lexicographic Ordering = iota
	Kmtricks
)

// Less reports whether a sorts strictly before b under the ordering.
func (o Ordering) Less(a, b []byte) bool {
	if o == Kmtricks {
		return KmtricksOrder.Compare(a, b) < 0
	}
	return bytes.Compare(a, b) < 0
}

// Canonical applies the ordering's canonicalization to seq.
func (o Ordering) Canonical(seq []byte) []byte {
	if o == Kmtricks {
		return CanonicalKmtricks(seq)
	}
	return Canonical(seq)
}

func (o Ordering) String() string {
	if o == Kmtricks {
		return "kmtricks"
	}
	return "lex"
}

// ParseOrdering accepts "lex" (or "lexicographic") and "kmtricks".
func ParseOrdering(s string) (Ordering, error) {
	switch s {
	case "", "lex", "lexicographic":
		return Lexicographic, nil
	case "kmtricks":
		return Kmtricks, nil
	}
	return Lexicographic, fmt.Errorf("unknown ordering %q (want lex or kmtricks)", s)
}
