// Package dna computes reverse complements and canonical forms of
// nucleotide sequences.
package dna

var complement [256]byte

func init() {
	for i := range complement {
		complement[i] = byte(i)
	}
	for _, p := range []string{"AT", "CG", "at", "cg"} {
		complement[p[0]] = p[1]
		complement[p[1]] = p[0]
	}
}

// Complement returns the Watson-Crick partner of b, keeping its case.
// Bytes other than A, C, G and T are returned unchanged.
func Complement(b byte) byte { return complement[b] }

// RevComp returns the reverse complement of seq in a new slice.
func RevComp(seq []byte) []byte {
	if len(seq) == 0 {
		return nil
	}
	return AppendRevComp(make([]byte, 0, len(seq)), seq)
}

// AppendRevComp appends the reverse complement of seq to dst.
func AppendRevComp(dst, seq []byte) []byte {
	for i := len(seq) - 1; i >= 0; i-- {
		dst = append(dst, complement[seq[i]])
	}
	return dst
}
