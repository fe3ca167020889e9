package engine

import (
	"context"
	"fmt"
)

// Embedded executes jobs serially in the calling goroutine. It is the
// reference backend: every other backend must produce byte-identical
// results for the same job.
type Embedded struct{}

// Run maps every record in input order, groups the emissions, and reduces
// each key in sorted order.
func (b *Embedded) Run(ctx context.Context, job Job) ([]KeyValue, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := validateJob(job); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("job %q: %w", job.Name, err)
	}

	var mapped []KeyValue
	emit := func(kv KeyValue) { mapped = append(mapped, kv) }
	for _, record := range job.Records {
		if err := job.Mapper.Map(record, emit); err != nil {
			return nil, fmt.Errorf("job %q: map: %w", job.Name, err)
		}
	}

	// The combine phase is a no-op relative to the reduce, so the
	// embedded backend skips it and reduces the raw emissions.
	out, err := reduceGroups(job.Reducer, groupByKey(mapped))
	if err != nil {
		return nil, fmt.Errorf("job %q: reduce: %w", job.Name, err)
	}
	sortResults(out)
	return out, nil
}
