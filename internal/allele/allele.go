// Package allele provides allele sets and zero-anchored length scales.
package allele

// Set holds the alleles of one variant record. Index 0 is the reference,
// indices 1..N are the alternates in declaration order.
type Set struct {
	Ref  string
	Alts []string
}

// Len returns the number of alleles including the reference.
func (s Set) Len() int {
	return len(s.Alts) + 1
}

// Allele returns the sequence for allele index i.
func (s Set) Allele(i int) (string, bool) {
	if i == 0 {
		return s.Ref, true
	}
	if i < 0 || i > len(s.Alts) {
		return "", false
	}
	return s.Alts[i-1], true
}

// Sequences returns all allele sequences, reference first.
func (s Set) Sequences() []string {
	seqs := make([]string, 0, s.Len())
	seqs = append(seqs, s.Ref)
	return append(seqs, s.Alts...)
}

// Lengths returns the length of every allele, reference first.
// The order mirrors allele indices and is never sorted.
func (s Set) Lengths() []float64 {
	lengths := make([]float64, 0, s.Len())
	lengths = append(lengths, float64(len(s.Ref)))
	for _, alt := range s.Alts {
		lengths = append(lengths, float64(len(alt)))
	}
	return lengths
}

// LengthDiffs returns len(allele) - len(anchor) for every allele.
// The reference slot is always 0.
func (s Set) LengthDiffs() []int {
	diffs := make([]int, s.Len())
	for i, alt := range s.Alts {
		diffs[i+1] = len(alt) - len(s.Ref)
	}
	return diffs
}

// HasIndel reports whether any alternate differs in length from the reference.
func (s Set) HasIndel() bool {
	for _, alt := range s.Alts {
		if len(alt) != len(s.Ref) {
			return true
		}
	}
	return false
}
