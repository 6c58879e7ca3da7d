package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-indel/internal/vcf"
)

func TestSortedIndex_Empty(t *testing.T) {
	idx := NewSortedIndex(nil)
	got, err := idx.Query(Region{Chrom: "chr1", Start: 1, End: 100})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSortedIndex_Boundaries(t *testing.T) {
	v := &vcf.Variant{Chrom: "chr1", Pos: 150, Ref: "A"}
	idx := NewSortedIndex([]*vcf.Variant{v})

	tests := []struct {
		r    Region
		want int
	}{
		{Region{Chrom: "chr1", Start: 150, End: 150}, 1},
		{Region{Chrom: "chr1", Start: 100, End: 150}, 1},
		{Region{Chrom: "chr1", Start: 150, End: 200}, 1},
		{Region{Chrom: "chr1", Start: 151, End: 200}, 0},
		{Region{Chrom: "chr1", Start: 100, End: 149}, 0},
		{Region{Chrom: "chr2", Start: 100, End: 200}, 0},
		{Region{Chrom: "chr1", Start: 200, End: 100}, 0},
	}
	for _, tt := range tests {
		got, err := idx.Query(tt.r)
		require.NoError(t, err)
		assert.Len(t, got, tt.want, tt.r.String())
	}
}

func TestSortedIndex_MatchesScan(t *testing.T) {
	// Unsorted input with a duplicate position and interleaved chromosomes.
	records := []*vcf.Variant{
		{Chrom: "chr1", Pos: 300, ID: "a"},
		{Chrom: "chr2", Pos: 100, ID: "b"},
		{Chrom: "chr1", Pos: 100, ID: "c"},
		{Chrom: "chr1", Pos: 200, ID: "d"},
		{Chrom: "chr1", Pos: 200, ID: "e"},
		{Chrom: "chr1", Pos: 500, ID: "f"},
	}
	sorted := NewSortedIndex(records)
	scan := NewScanIndex(records)

	regions := []Region{
		{Chrom: "chr1", Start: 1, End: 1000},
		{Chrom: "chr1", Start: 150, End: 300},
		{Chrom: "chr1", Start: 200, End: 200},
		{Chrom: "chr2", Start: 1, End: 100},
		{Chrom: "chr1", Start: 301, End: 499},
	}
	for _, r := range regions {
		want, err := scan.Query(r)
		require.NoError(t, err)
		got, err := sorted.Query(r)
		require.NoError(t, err)
		assert.Equal(t, ids(want), ids(got), r.String())
	}
}

func ids(records []*vcf.Variant) []string {
	out := make([]string, len(records))
	for i, v := range records {
		out[i] = v.ID
	}
	return out
}
