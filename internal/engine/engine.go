// Package engine provides the execution backend for the mining pipeline's
// distributed computations.
//
// A computation is described as a Job: a map phase over independent input
// records, an optional combine phase that pre-aggregates each worker's
// partial output, and a reduce phase over all values grouped by key. The
// orchestrator is backend-agnostic: it submits Jobs through the Backend
// interface and consumes the deterministic result set.
package engine

import "context"

// KeyValue is a single emitted record.
type KeyValue struct {
	Key   string
	Value string
}

// Emitter receives records from map and reduce functions.
type Emitter func(kv KeyValue)

// Mapper processes one input record. Implementations skip records they
// cannot parse (emit nothing) and return an error only for conditions that
// must abort the whole job.
type Mapper interface {
	Map(record string, emit Emitter) error
}

// Reducer processes all values observed for one key. The same interface
// serves the combine phase, which must be semantically a no-op with respect
// to the reduce phase: reducing combined partials yields the same result as
// reducing the raw emissions.
type Reducer interface {
	Reduce(key string, values []string, emit Emitter) error
}

// Job is a bounded, finite computation over a finite set of input records.
type Job struct {
	// Name identifies the job in errors and logs.
	Name string

	// Records are the input lines. Each record is processed independently.
	Records []string

	// Mapper is required.
	Mapper Mapper

	// Combiner, when non-nil, pre-aggregates each worker's map output
	// locally before the global reduce.
	Combiner Reducer

	// Reducer is required.
	Reducer Reducer
}

// Backend runs Jobs. A run either completes and returns the full result set
// or fails as a unit; there is no partial output.
//
// Result ordering is deterministic: sorted by key, then value.
type Backend interface {
	Run(ctx context.Context, job Job) ([]KeyValue, error)
}
