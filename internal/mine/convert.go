package mine

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"freqmine/internal/engine"
	"freqmine/internal/itemset"
)

// DefaultMinSupportFraction applies when neither an absolute nor a
// fractional minimum support is configured.
const DefaultMinSupportFraction = 0.5

// ResolveMinSupport counts the valid transactions across the input records
// and converts a fractional threshold into the absolute minimum support
// count: floor(fraction * total). The returned value is fixed for the
// remainder of the run.
func ResolveMinSupport(ctx context.Context, backend engine.Backend, fraction float64, transactions []string) (int, error) {
	if fraction <= 0 || fraction > 1 {
		return 0, fmt.Errorf("minimum support fraction must be in (0, 1], got %v", fraction)
	}

	job := engine.Job{
		Name:     "resolve-min-support",
		Records:  transactions,
		Mapper:   transactionCountMapper{},
		Combiner: sumReducer{},
		Reducer:  sumReducer{},
	}
	results, err := backend.Run(ctx, job)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, kv := range results {
		n, err := strconv.Atoi(kv.Value)
		if err != nil {
			return 0, fmt.Errorf("non-numeric transaction count %q", kv.Value)
		}
		total = n
	}
	return int(math.Floor(fraction * float64(total))), nil
}

// transactionCountMapper emits one count per well-formed transaction
// record. Malformed lines do not contribute to the total.
type transactionCountMapper struct{}

func (transactionCountMapper) Map(record string, emit engine.Emitter) error {
	if _, ok := itemset.ParseTransaction(record); ok {
		emit(engine.KeyValue{Key: "transactions", Value: "1"})
	}
	return nil
}
