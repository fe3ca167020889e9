package mine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"freqmine/internal/engine"
	"freqmine/internal/itemset"
	"freqmine/internal/logging"
)

// Level2Candidates generates the candidate 2-itemsets from the frequent
// 1-itemsets: all unordered 2-combinations. Every singleton is frequent by
// construction, so no subset check is needed and the computation runs
// locally.
//
// The same item listed twice with conflicting support counts is a data
// error (ErrInconsistentArtifact).
func Level2Candidates(frequent []itemset.Frequent) ([]string, error) {
	supports := make(map[string]int, len(frequent))
	for _, f := range frequent {
		if prev, ok := supports[f.Key]; ok && prev != f.Support {
			return nil, fmt.Errorf("%w: item %q has supports %d and %d", ErrInconsistentArtifact, f.Key, prev, f.Support)
		}
		supports[f.Key] = f.Support
	}

	items := make([]string, 0, len(supports))
	for item := range supports {
		items = append(items, item)
	}
	sort.Strings(items)

	var candidates []string
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			candidates = append(candidates, items[i]+itemset.ItemSeparator+items[j])
		}
	}
	return candidates, nil
}

// GenerateCandidates produces the deduplicated candidate itemsets of the
// target level (>= 3) from the frequent itemsets of the previous level,
// given as artifact lines.
//
// The join runs through the backend: frequent k-itemsets are grouped by
// their (k-1)-item prefix (the itemset minus its largest item) and joined
// pairwise within each group, which generates every (k+1)-candidate exactly
// once. Candidates with any non-frequent k-subset are then pruned, so no
// candidate violating anti-monotonicity ever reaches the counting stage.
func GenerateCandidates(ctx context.Context, backend engine.Backend, level int, frequentLines []string) ([]string, error) {
	if level < 3 {
		return nil, fmt.Errorf("candidate generation level must be >= 3, got %d", level)
	}

	frequentSet, err := frequentKeySet(frequentLines)
	if err != nil {
		return nil, err
	}

	job := engine.Job{
		Name:    fmt.Sprintf("generate-candidates-%d", level),
		Records: frequentLines,
		Mapper:  &prefixMapper{log: logging.New("candidates")},
		// No combiner: the join is not associative over partial groups.
		Reducer: joinReducer{},
	}
	results, err := backend.Run(ctx, job)
	if err != nil {
		return nil, err
	}

	candidates := make([]string, 0, len(results))
	for _, kv := range results {
		items := itemset.Items(kv.Key)
		if len(items) != level {
			continue
		}
		if hasAllFrequentSubsets(items, frequentSet) {
			candidates = append(candidates, kv.Key)
		}
	}
	return candidates, nil
}

// frequentKeySet indexes frequent artifact lines by canonical key, skipping
// malformed lines and rejecting conflicting duplicate supports.
func frequentKeySet(lines []string) (map[string]int, error) {
	set := make(map[string]int, len(lines))
	for _, line := range lines {
		f, ok := itemset.ParseFrequent(line)
		if !ok {
			continue
		}
		if prev, dup := set[f.Key]; dup && prev != f.Support {
			return nil, fmt.Errorf("%w: itemset %q has supports %d and %d", ErrInconsistentArtifact, f.Key, prev, f.Support)
		}
		set[f.Key] = f.Support
	}
	return set, nil
}

func hasAllFrequentSubsets(items []string, frequent map[string]int) bool {
	for _, sub := range itemset.DropOneSubsets(items) {
		if _, ok := frequent[sub]; !ok {
			return false
		}
	}
	return true
}

// prefixMapper splits each frequent k-itemset into its (k-1)-item prefix
// and its largest item, keying the shuffle by prefix.
type prefixMapper struct {
	log *slog.Logger
}

func (m *prefixMapper) Map(record string, emit engine.Emitter) error {
	f, ok := itemset.ParseFrequent(record)
	if !ok {
		m.log.Debug("skipping malformed frequent-itemset record", "record", record)
		return nil
	}
	items := itemset.Items(f.Key)
	if len(items) < 2 {
		return nil
	}
	prefix := strings.Join(items[:len(items)-1], itemset.ItemSeparator)
	emit(engine.KeyValue{Key: prefix, Value: items[len(items)-1]})
	return nil
}

// joinReducer joins the trailing items of a prefix group pairwise. A group
// with fewer than two members yields no candidates. Every trailing item is
// greater than every prefix item, so appending the ordered pair keeps the
// candidate key canonical.
type joinReducer struct{}

func (joinReducer) Reduce(prefix string, trailing []string, emit engine.Emitter) error {
	uniq := make(map[string]struct{}, len(trailing))
	for _, t := range trailing {
		uniq[t] = struct{}{}
	}
	items := make([]string, 0, len(uniq))
	for t := range uniq {
		items = append(items, t)
	}
	if len(items) < 2 {
		return nil
	}
	sort.Strings(items)

	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			key := prefix + itemset.ItemSeparator + items[i] + itemset.ItemSeparator + items[j]
			emit(engine.KeyValue{Key: key, Value: ""})
		}
	}
	return nil
}
