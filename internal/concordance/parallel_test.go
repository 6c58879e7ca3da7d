package concordance

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-indel/internal/output"
	"github.com/inodb/vibe-indel/internal/region"
)

// stubProcessor emits one row per region, sleeping longer for earlier
// regions so results arrive out of order.
type stubProcessor struct {
	fail string
}

func (s stubProcessor) ProcessRegion(r region.Region) ([]output.Row, error) {
	if r.Chrom == s.fail {
		return nil, errors.New("boom")
	}
	time.Sleep(time.Duration(10-r.Start) * time.Millisecond)
	return []output.Row{{Region: r.String(), Status: output.StatusOK}}, nil
}

func stubRegions(n int) []region.Region {
	regions := make([]region.Region, n)
	for i := range regions {
		regions[i] = region.Region{Chrom: fmt.Sprintf("chr%d", i), Start: int64(i), End: int64(i)}
	}
	return regions
}

func TestRunRegions_Order(t *testing.T) {
	regions := stubRegions(8)

	var got []string
	err := RunRegions(context.Background(), stubProcessor{}, regions, 4, nil, func(r output.Row) error {
		got = append(got, r.Region)
		return nil
	})
	require.NoError(t, err)

	want := make([]string, len(regions))
	for i, r := range regions {
		want[i] = r.String()
	}
	assert.Equal(t, want, got)
}

func TestRunRegions_FailedRegionDoesNotAbort(t *testing.T) {
	logger, logs := observedLogger()
	regions := stubRegions(5)

	var got []string
	err := RunRegions(context.Background(), stubProcessor{fail: "chr2"}, regions, 2, logger, func(r output.Row) error {
		got = append(got, r.Region)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"chr0:0-0", "chr1:1-1", "chr3:3-3", "chr4:4-4"}, got)
	assert.Equal(t, 1, logs.FilterMessage("failed to process region").Len())
}

func TestRunRegions_EmitError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	err := RunRegions(context.Background(), stubProcessor{}, stubRegions(6), 3, nil, func(output.Row) error {
		calls++
		if calls == 2 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, calls)
}

func TestRunRegions_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RunRegions(ctx, stubProcessor{}, stubRegions(3), 1, nil, func(output.Row) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOrderedCollect(t *testing.T) {
	results := make(chan WorkResult, 3)
	results <- WorkResult{Seq: 2}
	results <- WorkResult{Seq: 0}
	results <- WorkResult{Seq: 1}
	close(results)

	var seqs []int
	require.NoError(t, OrderedCollect(results, func(r WorkResult) error {
		seqs = append(seqs, r.Seq)
		return nil
	}))
	assert.Equal(t, []int{0, 1, 2}, seqs)
}
