package genotype

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/inodb/vibe-indel/internal/allele"
)

// Mode selects how call alleles are matched to truth alleles.
type Mode string

const (
	// SequenceMode compares allele sequences; used when both records share
	// the same reference sequence.
	SequenceMode Mode = "sequence"
	// LengthMode compares each allele's length difference from its own
	// record's reference; used when the references differ.
	LengthMode Mode = "length"
)

// RefHeuristic decides whether a call reference allele ("0") is compared
// as a true reference or as a length-adjusted allele in LengthMode.
type RefHeuristic int

const (
	// SubstringHeuristic treats the call reference as a reference when the
	// truth genotype string contains the character "0" anywhere. A truth
	// genotype of "10/1" therefore counts as containing the reference.
	SubstringHeuristic RefHeuristic = iota
	// AlleleHeuristic requires the parsed truth genotype to contain allele 0.
	AlleleHeuristic
)

// ParseRefHeuristic parses "substring" or "allele".
func ParseRefHeuristic(s string) (RefHeuristic, error) {
	switch strings.ToLower(s) {
	case "substring", "":
		return SubstringHeuristic, nil
	case "allele":
		return AlleleHeuristic, nil
	}
	return 0, fmt.Errorf("unknown reference heuristic %q (want substring or allele)", s)
}

func (h RefHeuristic) String() string {
	if h == AlleleHeuristic {
		return "allele"
	}
	return "substring"
}

// Correspondence maps call allele indices to truth allele indices at one
// position shared by two callsets.
type Correspondence struct {
	Mode      Mode
	heuristic RefHeuristic

	// SequenceMode
	truthSeqs []string
	callSeqs  []string

	// LengthMode
	truthDiffs   []int
	callNormal   []int
	callAdjusted []int
}

// NewCorrespondence builds the allele maps for a truth and a call record at
// the same position.
func NewCorrespondence(truth, call allele.Set, heuristic RefHeuristic) *Correspondence {
	c := &Correspondence{heuristic: heuristic}

	if truth.Ref == call.Ref {
		c.Mode = SequenceMode
		c.truthSeqs = truth.Sequences()
		c.callSeqs = call.Sequences()
		return c
	}

	c.Mode = LengthMode
	c.truthDiffs = truth.LengthDiffs()
	c.callNormal = call.LengthDiffs()
	c.callAdjusted = append([]int(nil), c.callNormal...)
	c.callAdjusted[0] = len(call.Ref) - len(truth.Ref)
	return c
}

// TruthMap renders the truth allele map, indexed by allele.
func (c *Correspondence) TruthMap() []string {
	if c.Mode == SequenceMode {
		return c.truthSeqs
	}
	return formatInts(c.truthDiffs)
}

// CallMap renders the call allele map. In LengthMode adjusted selects the
// map whose reference slot carries the reference length offset.
func (c *Correspondence) CallMap(adjusted bool) []string {
	if c.Mode == SequenceMode {
		return c.callSeqs
	}
	if adjusted {
		return formatInts(c.callAdjusted)
	}
	return formatInts(c.callNormal)
}

// Translate rewrites a call genotype in terms of truth allele indices.
// truthGT is the same sample's genotype in the truth record, or "" when the
// sample is absent there.
func (c *Correspondence) Translate(callGT, truthGT string, policy DelimiterPolicy) Translation {
	g := Parse(callGT)
	if g.IsMissing() {
		return Translation{Genotype: callGT, Alleles: g.Alleles, Missing: true}
	}

	adjusted := c.Mode == LengthMode && !c.truthHasRef(truthGT)

	var tr Translation
	tr.Alleles = make([]string, len(g.Alleles))
	for i, token := range g.Alleles {
		if token == Missing {
			tr.Alleles[i] = Missing
			continue
		}

		key, value, ok := c.match(token, adjusted && token == "0")
		if !ok {
			tr.Alleles[i] = Unmatched
			tr.Misses = append(tr.Misses, Miss{Token: token, Value: value})
			continue
		}
		tr.Alleles[i] = strconv.Itoa(key)
	}

	tr.Genotype = g.Join(tr.Alleles, policy)
	return tr
}

// match finds the first truth allele, in ascending index order, whose value
// equals the call allele's value. value is the call allele's rendered value,
// empty when token is not an allele of the call record.
func (c *Correspondence) match(token string, adjusted bool) (key int, value string, ok bool) {
	idx, isIndex := alleleIndex(token)

	if c.Mode == SequenceMode {
		if !isIndex || idx >= len(c.callSeqs) {
			return 0, "", false
		}
		seq := c.callSeqs[idx]
		for k, truthSeq := range c.truthSeqs {
			if truthSeq == seq {
				return k, seq, true
			}
		}
		return 0, seq, false
	}

	diffs := c.callNormal
	if adjusted {
		diffs = c.callAdjusted
	}
	if !isIndex || idx >= len(diffs) {
		return 0, "", false
	}
	diff := diffs[idx]
	for k, truthDiff := range c.truthDiffs {
		if truthDiff == diff {
			return k, strconv.Itoa(diff), true
		}
	}
	return 0, strconv.Itoa(diff), false
}

func (c *Correspondence) truthHasRef(truthGT string) bool {
	if c.heuristic == AlleleHeuristic {
		for _, idx := range Parse(truthGT).Indices() {
			if idx == 0 {
				return true
			}
		}
		return false
	}
	return strings.Contains(truthGT, "0")
}

func formatInts(values []int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.Itoa(v)
	}
	return out
}
