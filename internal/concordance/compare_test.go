package concordance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-indel/internal/genotype"
	"github.com/inodb/vibe-indel/internal/output"
	"github.com/inodb/vibe-indel/internal/region"
	"github.com/inodb/vibe-indel/internal/vcf"
)

func truthRecords() []*vcf.Variant {
	return []*vcf.Variant{
		{
			Chrom: "chr1", Pos: 100, Ref: "A", Alts: []string{"AT"},
			Calls: []vcf.Call{{Sample: "S1", GT: "0/1"}, {Sample: "S2", GT: "1/1"}},
		},
		{
			Chrom: "chr1", Pos: 200, Ref: "CA", Alts: []string{"C", "CAA"},
			Calls: []vcf.Call{{Sample: "S1", GT: "1|2"}, {Sample: "S2", GT: "0/0"}},
		},
	}
}

func callRecords() []*vcf.Variant {
	return []*vcf.Variant{
		{
			// Anchored one base further left than the truth record.
			Chrom: "chr1", Pos: 100, Ref: "AA", Alts: []string{"AAT"},
			Calls: []vcf.Call{
				{Sample: "S1", GT: "0/1"},
				{Sample: "S2", GT: "0/1"},
				{Sample: "S3", GT: ".|."},
			},
		},
		{
			Chrom: "chr1", Pos: 200, Ref: "CA", Alts: []string{"CAA", "C", "CAAA"},
			Calls: []vcf.Call{{Sample: "S1", GT: "2|1"}, {Sample: "S2", GT: "0/3"}},
		},
		{
			Chrom: "chr1", Pos: 300, Ref: "G", Alts: []string{"GT"},
			Calls: []vcf.Call{{Sample: "S1", GT: "0/1"}},
		},
	}
}

func TestComparer_ProcessRegion(t *testing.T) {
	logger, logs := observedLogger()
	c := NewComparer(region.NewScanIndex(truthRecords()), region.NewScanIndex(callRecords()))
	c.SetLogger(logger)

	rows, err := c.ProcessRegion(region.Region{Chrom: "chr1", Start: 1, End: 1000})
	require.NoError(t, err)
	require.Len(t, rows, 6)

	tests := []struct {
		pos        int64
		sample     string
		translated string
		status     output.Status
	}{
		{100, "S1", "0/1", output.StatusOK},        // truth has "0": normal map
		{100, "S2", "1/1", output.StatusOK},        // truth lacks "0": adjusted map
		{100, "S3", ".|.", output.StatusMissing},   // missing passes through
		{200, "S1", "1|2", output.StatusOK},        // sequence mode, phase kept
		{200, "S2", "0/N/A", output.StatusUnmatched},
		{300, "", "", output.StatusNoTruth},
	}
	for i, tt := range tests {
		assert.Equal(t, tt.pos, rows[i].Pos, "row %d", i)
		assert.Equal(t, tt.sample, rows[i].Sample, "row %d", i)
		assert.Equal(t, tt.translated, rows[i].Translated, "row %d", i)
		assert.Equal(t, tt.status, rows[i].Status, "row %d", i)
	}

	assert.Equal(t, "mode=length truth=0/1 concordant=true", rows[0].Detail)
	assert.Equal(t, "mode=length truth=1/1 concordant=true", rows[1].Detail)
	assert.Equal(t, "mode=sequence truth=1|2 concordant=true", rows[3].Detail)

	unmatched := logs.FilterMessage("allele not found in truth set").All()
	require.Len(t, unmatched, 1)
	fields := unmatched[0].ContextMap()
	assert.Equal(t, "S2", fields["sample"])
	assert.Equal(t, "CAAA", fields["value"])
	assert.Equal(t, int64(200), fields["pos"])

	assert.Equal(t, 1, logs.FilterMessage("position found in call set but not in truth set").Len())
}

func TestComparer_UnphasedPolicy(t *testing.T) {
	c := NewComparer(region.NewScanIndex(truthRecords()), region.NewScanIndex(callRecords()))
	c.SetDelimiterPolicy(genotype.UnphasedDelimiter)

	rows, err := c.ProcessRegion(region.Region{Chrom: "chr1", Start: 200, End: 200})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "1/2", rows[0].Translated)
}

func TestComparer_AlleleHeuristic(t *testing.T) {
	truth := []*vcf.Variant{{
		Chrom: "chr1", Pos: 100, Ref: "A", Alts: []string{"AT"},
		Calls: []vcf.Call{{Sample: "S1", GT: "10/1"}},
	}}
	call := []*vcf.Variant{{
		Chrom: "chr1", Pos: 100, Ref: "AA", Alts: []string{"AAT"},
		Calls: []vcf.Call{{Sample: "S1", GT: "0/1"}},
	}}
	r := region.Region{Chrom: "chr1", Start: 100, End: 100}

	c := NewComparer(region.NewScanIndex(truth), region.NewScanIndex(call))
	rows, err := c.ProcessRegion(r)
	require.NoError(t, err)
	assert.Equal(t, "0/1", rows[0].Translated)

	c.SetRefHeuristic(genotype.AlleleHeuristic)
	rows, err = c.ProcessRegion(r)
	require.NoError(t, err)
	assert.Equal(t, "1/1", rows[0].Translated)
}

func TestComparer_SampleMissingFromTruth(t *testing.T) {
	truth := []*vcf.Variant{{
		Chrom: "chr1", Pos: 100, Ref: "A", Alts: []string{"AT"},
		Calls: []vcf.Call{{Sample: "other", GT: "0/0"}},
	}}
	call := []*vcf.Variant{{
		Chrom: "chr1", Pos: 100, Ref: "A", Alts: []string{"AT"},
		Calls: []vcf.Call{{Sample: "S1", GT: "0/1"}},
	}}

	c := NewComparer(region.NewScanIndex(truth), region.NewScanIndex(call))
	rows, err := c.ProcessRegion(region.Region{Chrom: "chr1", Start: 1, End: 200})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "0/1", rows[0].Translated)
	assert.Equal(t, "mode=sequence truth=.", rows[0].Detail)
}

func TestComparer_DuplicatePositions(t *testing.T) {
	truth := []*vcf.Variant{{Chrom: "chr1", Pos: 100, Ref: "A", Alts: []string{"AT"}}}
	call := []*vcf.Variant{
		{Chrom: "chr1", Pos: 100, Ref: "A", Alts: []string{"AT"}, Calls: []vcf.Call{{Sample: "S1", GT: "0/1"}}},
		{Chrom: "chr1", Pos: 100, Ref: "A", Alts: []string{"ATT", "AT"}, Calls: []vcf.Call{{Sample: "S1", GT: "0/2"}}},
	}

	c := NewComparer(region.NewScanIndex(truth), region.NewScanIndex(call))
	rows, err := c.ProcessRegion(region.Region{Chrom: "chr1", Start: 1, End: 200})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "0/2", rows[0].Original)
	assert.Equal(t, "0/1", rows[0].Translated)
}

func TestComparer_EmptyRegion(t *testing.T) {
	logger, logs := observedLogger()
	c := NewComparer(region.NewScanIndex(truthRecords()), region.NewScanIndex(callRecords()))
	c.SetLogger(logger)

	rows, err := c.ProcessRegion(region.Region{Chrom: "chr2", Start: 1, End: 1000})
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, 1, logs.FilterMessage("no call records found in region").Len())
}

func TestSameAlleles(t *testing.T) {
	assert.True(t, sameAlleles("0/1", "1|0"))
	assert.True(t, sameAlleles("1/1", "1/1"))
	assert.False(t, sameAlleles("0/1", "1/1"))
	assert.False(t, sameAlleles("1", "1/1"))
}
