package region

import (
	"sort"

	"github.com/inodb/vibe-indel/internal/vcf"
)

// SortedIndex answers queries with a binary search over records sorted by
// position, one slice per chromosome. Records are never modified after build.
type SortedIndex struct {
	byChrom map[string][]entry
}

type entry struct {
	pos    int64
	ord    int
	record *vcf.Variant
}

// NewSortedIndex builds an index over records.
func NewSortedIndex(records []*vcf.Variant) *SortedIndex {
	byChrom := make(map[string][]entry)
	for i, v := range records {
		byChrom[v.Chrom] = append(byChrom[v.Chrom], entry{pos: v.Pos, ord: i, record: v})
	}
	for _, entries := range byChrom {
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].pos != entries[j].pos {
				return entries[i].pos < entries[j].pos
			}
			return entries[i].ord < entries[j].ord
		})
	}
	return &SortedIndex{byChrom: byChrom}
}

// Query returns the records inside r in file order.
func (s *SortedIndex) Query(r Region) ([]*vcf.Variant, error) {
	entries := s.byChrom[r.Chrom]
	if len(entries) == 0 || r.End < r.Start {
		return nil, nil
	}

	// lo is the first entry at or after Start, hi the first entry past End.
	lo := sort.Search(len(entries), func(i int) bool {
		return entries[i].pos >= r.Start
	})
	hi := sort.Search(len(entries), func(i int) bool {
		return entries[i].pos > r.End
	})
	if lo >= hi {
		return nil, nil
	}

	hits := make([]entry, hi-lo)
	copy(hits, entries[lo:hi])
	sort.Slice(hits, func(i, j int) bool { return hits[i].ord < hits[j].ord })

	out := make([]*vcf.Variant, len(hits))
	for i, e := range hits {
		out[i] = e.record
	}
	return out, nil
}
