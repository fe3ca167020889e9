package mine

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"freqmine/internal/engine"
	"freqmine/internal/itemset"
	"freqmine/internal/logging"
)

// Candidate is a candidate itemset prepared for subset matching: the
// canonical key plus its items in canonical order.
type Candidate struct {
	Key   string
	Items []string
}

// ParseCandidates parses candidate artifact lines into deduplicated
// Candidates. Blank or malformed lines are skipped.
func ParseCandidates(lines []string) []Candidate {
	seen := make(map[string]struct{}, len(lines))
	out := make([]Candidate, 0, len(lines))
	for _, line := range lines {
		key, ok := itemset.ParseCandidate(line)
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Candidate{Key: key, Items: itemset.Items(key)})
	}
	return out
}

// SupportCounter is the distributed support-counting computation for one
// level. At level 1 candidates are implicit: every distinct observed item is
// a candidate singleton. At level >= 2 the supplied candidate set is matched
// against each transaction's item set.
type SupportCounter struct {
	Level      int
	MinSupport int

	// Candidates drives level >= 2 matching. Ignored at level 1.
	Candidates []Candidate

	log *slog.Logger
}

// NewSupportCounter builds the counter for a level.
func NewSupportCounter(level, minSupport int, candidates []Candidate) (*SupportCounter, error) {
	if level < 1 {
		return nil, fmt.Errorf("support counter level must be >= 1, got %d", level)
	}
	if minSupport < 0 {
		return nil, fmt.Errorf("minimum support must be >= 0, got %d", minSupport)
	}
	return &SupportCounter{
		Level:      level,
		MinSupport: minSupport,
		Candidates: candidates,
		log:        logging.New("support"),
	}, nil
}

// Run counts supports across the transaction records and returns every
// itemset meeting the minimum-support threshold, ordered by canonical key.
func (c *SupportCounter) Run(ctx context.Context, backend engine.Backend, transactions []string) ([]itemset.Frequent, error) {
	var mapper engine.Mapper
	if c.Level == 1 {
		mapper = &singletonMapper{log: c.log}
	} else {
		mapper = &candidateMapper{candidates: c.Candidates, log: c.log}
	}

	job := engine.Job{
		Name:     fmt.Sprintf("count-support-%d", c.Level),
		Records:  transactions,
		Mapper:   mapper,
		Combiner: sumReducer{},
		Reducer:  thresholdReducer{min: c.MinSupport},
	}

	results, err := backend.Run(ctx, job)
	if err != nil {
		return nil, err
	}

	frequent := make([]itemset.Frequent, 0, len(results))
	for _, kv := range results {
		support, err := strconv.Atoi(kv.Value)
		if err != nil {
			return nil, fmt.Errorf("non-numeric support %q for itemset %q", kv.Value, kv.Key)
		}
		frequent = append(frequent, itemset.Frequent{Key: kv.Key, Support: support})
	}
	return frequent, nil
}

// singletonMapper emits one occurrence per distinct item in a transaction.
type singletonMapper struct {
	log *slog.Logger
}

func (m *singletonMapper) Map(record string, emit engine.Emitter) error {
	tx, ok := itemset.ParseTransaction(record)
	if !ok {
		m.log.Debug("skipping malformed transaction record", "record", record)
		return nil
	}
	for _, item := range tx.Items {
		emit(engine.KeyValue{Key: item, Value: "1"})
	}
	return nil
}

// candidateMapper emits one occurrence per candidate itemset contained in a
// transaction. A transaction with fewer items than the candidate trivially
// contributes nothing.
type candidateMapper struct {
	candidates []Candidate
	log        *slog.Logger
}

func (m *candidateMapper) Map(record string, emit engine.Emitter) error {
	tx, ok := itemset.ParseTransaction(record)
	if !ok {
		m.log.Debug("skipping malformed transaction record", "record", record)
		return nil
	}
	for _, cand := range m.candidates {
		if itemset.Contains(tx.Items, cand.Items) {
			emit(engine.KeyValue{Key: cand.Key, Value: "1"})
		}
	}
	return nil
}

// sumReducer sums occurrence counts for a key. It serves as the local
// combine phase: summing partial sums equals summing the raw occurrences.
type sumReducer struct{}

func (sumReducer) Reduce(key string, values []string, emit engine.Emitter) error {
	total, err := sumValues(values)
	if err != nil {
		return err
	}
	emit(engine.KeyValue{Key: key, Value: strconv.Itoa(total)})
	return nil
}

// thresholdReducer sums occurrence counts and emits only keys whose total
// meets the minimum support. Itemsets below the threshold are dropped, not
// errored.
type thresholdReducer struct {
	min int
}

func (r thresholdReducer) Reduce(key string, values []string, emit engine.Emitter) error {
	total, err := sumValues(values)
	if err != nil {
		return err
	}
	if total >= r.min {
		emit(engine.KeyValue{Key: key, Value: strconv.Itoa(total)})
	}
	return nil
}

func sumValues(values []string) (int, error) {
	total := 0
	for _, v := range values {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("non-numeric count %q", v)
		}
		total += n
	}
	return total, nil
}
