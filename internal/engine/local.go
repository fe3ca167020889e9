package engine

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Local executes the map+combine phases across a pool of worker goroutines.
//
// Records are split into contiguous partitions, one per worker. Workers
// share no mutable state: each maps its own partition, locally combines the
// partial emissions, and writes only to its own result slot. The combine
// phase runs before the global reduce; since reduction is a sum-style
// aggregation this reordering preserves the result exactly.
type Local struct {
	// Workers is the pool size. Must be >= 1.
	Workers int
}

// Run executes the job. Either the full result set is returned or the job
// fails as a unit; the first worker error aborts the run.
func (b *Local) Run(ctx context.Context, job Job) ([]KeyValue, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := validateJob(job); err != nil {
		return nil, err
	}
	if b.Workers < 1 {
		return nil, fmt.Errorf("job %q: worker count must be >= 1", job.Name)
	}

	parts := partition(job.Records, b.Workers)

	// One slot per worker keeps result collection deterministic and
	// lock-free.
	partials := make([][]KeyValue, len(parts))

	g, gctx := errgroup.WithContext(ctx)
	for i := range parts {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			var mapped []KeyValue
			emit := func(kv KeyValue) { mapped = append(mapped, kv) }
			for _, record := range parts[i] {
				if err := job.Mapper.Map(record, emit); err != nil {
					return fmt.Errorf("map: %w", err)
				}
			}

			if job.Combiner == nil {
				partials[i] = mapped
				return nil
			}
			combined, err := reduceGroups(job.Combiner, groupByKey(mapped))
			if err != nil {
				return fmt.Errorf("combine: %w", err)
			}
			partials[i] = combined
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("job %q: %w", job.Name, err)
	}

	var merged []KeyValue
	for _, p := range partials {
		merged = append(merged, p...)
	}

	out, err := reduceGroups(job.Reducer, groupByKey(merged))
	if err != nil {
		return nil, fmt.Errorf("job %q: reduce: %w", job.Name, err)
	}
	sortResults(out)
	return out, nil
}

// partition splits records into at most n contiguous, near-equal slices.
func partition(records []string, n int) [][]string {
	if len(records) == 0 {
		return nil
	}
	if n > len(records) {
		n = len(records)
	}
	parts := make([][]string, 0, n)
	size := len(records) / n
	rem := len(records) % n
	start := 0
	for i := 0; i < n; i++ {
		end := start + size
		if i < rem {
			end++
		}
		parts = append(parts, records[start:end])
		start = end
	}
	return parts
}
