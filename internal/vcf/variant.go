// Package vcf provides VCF file parsing functionality.
package vcf

import "github.com/inodb/vibe-indel/internal/allele"

// Variant represents a single VCF record with its per-sample genotype calls.
type Variant struct {
	Chrom string   // Chromosome name (e.g., "12", "chr12")
	Pos   int64    // 1-based genomic position
	ID    string   // Variant identifier (e.g., rs ID)
	Ref   string   // Reference allele
	Alts  []string // Alternate alleles in declaration order, empty for "."
	Calls []Call   // One entry per sample column
}

// Call is one sample's genotype at a variant.
type Call struct {
	Sample string
	GT     string // raw GT value, "." when the FORMAT has no GT key
}

// Alleles returns the reference and alternates as an allele set.
func (v *Variant) Alleles() allele.Set {
	return allele.Set{Ref: v.Ref, Alts: v.Alts}
}

// IsIndel returns true if any alternate differs in length from the reference.
func (v *Variant) IsIndel() bool {
	return v.Alleles().HasIndel()
}

// Call returns the genotype call for sample.
func (v *Variant) Call(sample string) (Call, bool) {
	for _, c := range v.Calls {
		if c.Sample == sample {
			return c, true
		}
	}
	return Call{}, false
}

// Chromosomes returns the distinct chromosomes of records in first-seen order.
func Chromosomes(records []*Variant) []string {
	seen := make(map[string]bool)
	var chroms []string
	for _, v := range records {
		if !seen[v.Chrom] {
			seen[v.Chrom] = true
			chroms = append(chroms, v.Chrom)
		}
	}
	return chroms
}
