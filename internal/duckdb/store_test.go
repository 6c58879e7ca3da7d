package duckdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-indel/internal/region"
	"github.com/inodb/vibe-indel/internal/vcf"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecords() []*vcf.Variant {
	return []*vcf.Variant{
		{Chrom: "chr1", Pos: 99, Ref: "A", Alts: []string{"AT"}},
		{Chrom: "chr1", Pos: 100, Ref: "A", Alts: []string{"AT"}},
		{Chrom: "chr2", Pos: 150, Ref: "C", Alts: []string{"CA"}},
		{Chrom: "chr1", Pos: 200, Ref: "G", Alts: []string{"GTT"}},
		{Chrom: "chr1", Pos: 201, Ref: "T", Alts: []string{"TA"}},
	}
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s.DB())
}

func TestIndex_Query(t *testing.T) {
	s := openInMemory(t)
	records := testRecords()

	idx, err := s.Index("call", records)
	require.NoError(t, err)

	n, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	got, err := idx.Query(region.Region{Chrom: "chr1", Start: 100, End: 200})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Same(t, records[1], got[0])
	assert.Same(t, records[3], got[1])

	got, err = idx.Query(region.Region{Chrom: "chr3", Start: 1, End: 1000})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestIndex_MatchesScan(t *testing.T) {
	s := openInMemory(t)
	records := testRecords()

	idx, err := s.Index("truth", records)
	require.NoError(t, err)
	scan := region.NewScanIndex(records)

	regions := []region.Region{
		{Chrom: "chr1", Start: 1, End: 1000},
		{Chrom: "chr1", Start: 99, End: 99},
		{Chrom: "chr2", Start: 100, End: 200},
		{Chrom: "chr2", Start: 151, End: 200},
	}
	for _, r := range regions {
		want, err := scan.Query(r)
		require.NoError(t, err)
		got, err := idx.Query(r)
		require.NoError(t, err)
		assert.Equal(t, want, got, r.String())
	}
}

func TestIndex_DatasetsAreSeparate(t *testing.T) {
	s := openInMemory(t)

	truth, err := s.Index("truth", testRecords()[:2])
	require.NoError(t, err)
	call, err := s.Index("call", testRecords())
	require.NoError(t, err)

	r := region.Region{Chrom: "chr1", Start: 1, End: 1000}
	got, err := truth.Query(r)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = call.Query(r)
	require.NoError(t, err)
	assert.Len(t, got, 4)

	// Reloading a dataset replaces its rows.
	truth, err = s.Index("truth", testRecords()[:1])
	require.NoError(t, err)
	n, err := truth.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestIndex_Empty(t *testing.T) {
	s := openInMemory(t)

	idx, err := s.Index("empty", nil)
	require.NoError(t, err)

	got, err := idx.Query(region.Region{Chrom: "chr1", Start: 1, End: 10})
	require.NoError(t, err)
	assert.Empty(t, got)
}
