package concordance

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/inodb/vibe-indel/internal/output"
	"github.com/inodb/vibe-indel/internal/region"
)

// WorkItem holds a region waiting to be processed.
type WorkItem struct {
	Seq    int
	Region region.Region
}

// WorkResult holds the rows produced for a single region.
type WorkResult struct {
	Seq    int
	Region region.Region
	Rows   []output.Row
	Err    error
}

// ParallelProcess processes work items using a pool of workers.
// Results are sent to the returned channel in arrival order (not sequence order).
// Use OrderedCollect to consume results in sequence-number order.
// If workers is 0, runtime.NumCPU() is used.
func ParallelProcess(p RegionProcessor, items <-chan WorkItem, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for item := range items {
				rows, err := p.ProcessRegion(item.Region)
				results <- WorkResult{
					Seq:    item.Seq,
					Region: item.Region,
					Rows:   rows,
					Err:    err,
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order.
// It buffers out-of-order results in a pending map and emits them
// as soon as the next expected sequence number is available.
// Blocks until the results channel is closed.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult) error) error {
	pending := make(map[int]WorkResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}

// RunRegions processes every region with p and hands the rows to emit in
// region order. A region that fails is logged and skipped; an emit error
// stops the run.
func RunRegions(ctx context.Context, p RegionProcessor, regions []region.Region, workers int, logger *zap.Logger, emit func(output.Row) error) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	items := make(chan WorkItem, len(regions))
	go func() {
		defer close(items)
		for i, r := range regions {
			select {
			case items <- WorkItem{Seq: i, Region: r}:
			case <-ctx.Done():
				return
			}
		}
	}()

	results := ParallelProcess(p, items, workers)

	err := OrderedCollect(results, func(r WorkResult) error {
		if r.Err != nil {
			logger.Error("failed to process region",
				zap.Stringer("region", r.Region),
				zap.Error(r.Err))
			return nil
		}
		for _, row := range r.Rows {
			if err := emit(row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return ctx.Err()
}
