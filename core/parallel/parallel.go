package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/YuminosukeSato/scibayes/pkg/errors"
)

// DefaultThreshold is the item count at or below which work runs sequentially.
const DefaultThreshold = 8

// Parallelize divides the specified total number (items) according to the number of CPU cores,
// and executes the specified function (fn) in parallel for each range (start, end).
// The first error returned by any range cancels ctx for the others and is returned.
// A panic inside fn is converted into a PanicError.
func Parallelize(ctx context.Context, items int, fn func(ctx context.Context, start, end int) error) error {
	if items == 0 {
		return nil
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}

	// Calculate the number of items each worker handles (ceiling division)
	chunkSize := (items + numWorkers - 1) / numWorkers

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		g.Go(func() error {
			return errors.SafeExecute("parallel.Parallelize", func() error {
				return fn(gctx, start, end)
			})
		})
	}
	return g.Wait()
}

// ParallelizeWithThreshold performs parallelization only when the number of items exceeds the threshold
// If below threshold, normal sequential processing is performed
func ParallelizeWithThreshold(ctx context.Context, items, threshold int, fn func(ctx context.Context, start, end int) error) error {
	if items <= threshold {
		return errors.SafeExecute("parallel.ParallelizeWithThreshold", func() error {
			return fn(ctx, 0, items)
		})
	}
	return Parallelize(ctx, items, fn)
}

// ForEach calls fn(i) for every i in [0, items), fanning out above
// DefaultThreshold. Callers write results into index i of a preallocated
// slice, so output order does not depend on scheduling.
func ForEach(ctx context.Context, items int, fn func(i int) error) error {
	return ParallelizeWithThreshold(ctx, items, DefaultThreshold, func(ctx context.Context, start, end int) error {
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	})
}
