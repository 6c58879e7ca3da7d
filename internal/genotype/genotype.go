// Package genotype parses sample genotypes and re-expresses them on a
// normalized allele scale or against a second callset.
package genotype

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/inodb/vibe-indel/internal/allele"
)

// Genotype delimiters and sentinels.
const (
	Unphased = '/'
	Phased   = '|'

	Missing       = "."
	NotApplicable = "NA"  // index outside the scale or not an integer
	Unmatched     = "N/A" // no allele in the truth record corresponds
)

// Genotype is a sample's ordered allele tokens plus the joining delimiter
// it was written with.
type Genotype struct {
	Alleles   []string
	Delimiter byte
}

// Parse splits a GT string on both delimiters. The recorded delimiter is
// '/' if the string contains one, else '|'.
func Parse(gt string) Genotype {
	delim := byte(Phased)
	if strings.IndexByte(gt, Unphased) >= 0 {
		delim = Unphased
	}

	var alleles []string
	start := 0
	for i := 0; i < len(gt); i++ {
		if gt[i] == Unphased || gt[i] == Phased {
			alleles = append(alleles, gt[start:i])
			start = i + 1
		}
	}
	alleles = append(alleles, gt[start:])

	return Genotype{Alleles: alleles, Delimiter: delim}
}

// IsMissing reports whether every allele is the missing marker.
func (g Genotype) IsMissing() bool {
	for _, a := range g.Alleles {
		if a != Missing {
			return false
		}
	}
	return len(g.Alleles) > 0
}

// Indices returns the allele tokens that parse as canonical allele indices.
func (g Genotype) Indices() []int {
	var idx []int
	for _, a := range g.Alleles {
		if i, ok := alleleIndex(a); ok {
			idx = append(idx, i)
		}
	}
	return idx
}

func (g Genotype) String() string {
	return strings.Join(g.Alleles, string(g.Delimiter))
}

// DelimiterPolicy controls the delimiter used when a translated genotype
// is joined back together.
type DelimiterPolicy int

const (
	// UnphasedDelimiter always joins with '/'.
	UnphasedDelimiter DelimiterPolicy = iota
	// PreserveDelimiter joins with the delimiter the input used.
	PreserveDelimiter
)

// ParseDelimiterPolicy parses "unphased" or "preserve".
func ParseDelimiterPolicy(s string) (DelimiterPolicy, error) {
	switch strings.ToLower(s) {
	case "unphased", "slash":
		return UnphasedDelimiter, nil
	case "preserve":
		return PreserveDelimiter, nil
	}
	return 0, fmt.Errorf("unknown delimiter policy %q (want unphased or preserve)", s)
}

func (p DelimiterPolicy) String() string {
	if p == PreserveDelimiter {
		return "preserve"
	}
	return "unphased"
}

// Join joins translated tokens according to the policy.
func (g Genotype) Join(tokens []string, policy DelimiterPolicy) string {
	delim := byte(Unphased)
	if policy == PreserveDelimiter {
		delim = g.Delimiter
	}
	return strings.Join(tokens, string(delim))
}

// Translation is the result of re-expressing one genotype.
type Translation struct {
	Genotype string
	Alleles  []string
	NA       int    // tokens rendered as NotApplicable
	Misses   []Miss // tokens rendered as Unmatched
	Missing  bool   // the whole genotype was missing and passed through
}

// Miss records an allele that had no counterpart in the truth record.
type Miss struct {
	Token string
	Value string
}

// TranslateLengths replaces every allele index with its value on the scale.
// Missing tokens pass through; tokens that are not an index on the scale
// become NotApplicable.
func TranslateLengths(g Genotype, scale allele.Scale, policy DelimiterPolicy) Translation {
	var tr Translation
	if g.IsMissing() {
		tr.Missing = true
	}

	tr.Alleles = make([]string, len(g.Alleles))
	for i, token := range g.Alleles {
		if token == Missing {
			tr.Alleles[i] = Missing
			continue
		}
		idx, err := strconv.Atoi(token)
		if err != nil {
			tr.Alleles[i] = NotApplicable
			tr.NA++
			continue
		}
		v, ok := scale.At(idx)
		if !ok {
			tr.Alleles[i] = NotApplicable
			tr.NA++
			continue
		}
		tr.Alleles[i] = allele.FormatValue(v)
	}

	tr.Genotype = g.Join(tr.Alleles, policy)
	return tr
}

// alleleIndex parses a token written as a canonical decimal allele index.
// "01" and "+1" are not allele indices.
func alleleIndex(token string) (int, bool) {
	i, err := strconv.Atoi(token)
	if err != nil || i < 0 || strconv.Itoa(i) != token {
		return 0, false
	}
	return i, true
}
