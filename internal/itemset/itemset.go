// Package itemset defines the canonical textual representation of
// transactions and itemsets.
//
// An itemset's identity is its canonical key: the item tokens sorted
// lexicographically and joined with a single space. Two itemsets are equal
// iff their keys are equal; every deduplication and subset lookup in the
// mining pipeline relies on this.
package itemset

import (
	"sort"
	"strconv"
	"strings"
)

const (
	// ItemSeparator joins items inside a canonical key.
	ItemSeparator = " "

	// FieldSeparator separates the record fields of transaction and
	// frequent-itemset lines.
	FieldSeparator = "\t"
)

// Frequent is an itemset together with its support count.
type Frequent struct {
	// Key is the canonical itemset key.
	Key string

	// Support is the number of transactions containing the itemset.
	Support int
}

// KeyOf canonicalizes a slice of item tokens into the canonical key.
//
// Tokens are trimmed, empty tokens dropped, duplicates collapsed, and the
// remainder sorted. The input slice is not mutated.
func KeyOf(items []string) string {
	return strings.Join(Canonical(items), ItemSeparator)
}

// Canonical returns the sorted, deduplicated item tokens of an itemset.
// The input slice is not mutated.
func Canonical(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		if _, dup := seen[it]; dup {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	sort.Strings(out)
	return out
}

// Items splits a canonical (or near-canonical) key back into sorted,
// deduplicated item tokens.
func Items(key string) []string {
	return Canonical(strings.Fields(key))
}

// Contains reports whether sub is a subset of super. Both slices must be in
// canonical order (sorted, unique), which allows a single merge walk.
func Contains(super, sub []string) bool {
	if len(sub) > len(super) {
		return false
	}
	i := 0
	for _, s := range super {
		if i == len(sub) {
			return true
		}
		if s == sub[i] {
			i++
		}
	}
	return i == len(sub)
}

// DropOneSubsets returns the canonical keys of all (n-1)-item subsets of a
// canonically ordered n-itemset. These are exactly the subsets the Apriori
// pruning step must find in the previous level.
func DropOneSubsets(items []string) []string {
	if len(items) < 2 {
		return nil
	}
	keys := make([]string, 0, len(items))
	for drop := range items {
		sub := make([]string, 0, len(items)-1)
		sub = append(sub, items[:drop]...)
		sub = append(sub, items[drop+1:]...)
		keys = append(keys, strings.Join(sub, ItemSeparator))
	}
	return keys
}

// FormatFrequent renders a frequent-itemset artifact line: the canonical key
// and the support count, tab-separated.
func FormatFrequent(f Frequent) string {
	return f.Key + FieldSeparator + strconv.Itoa(f.Support)
}

// ParseFrequent parses a frequent-itemset artifact line. ok is false for
// malformed lines (wrong field count, empty itemset, non-numeric support);
// callers skip those records.
func ParseFrequent(line string) (Frequent, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Frequent{}, false
	}
	parts := strings.Split(line, FieldSeparator)
	if len(parts) != 2 {
		return Frequent{}, false
	}
	key := KeyOf(strings.Fields(parts[0]))
	if key == "" {
		return Frequent{}, false
	}
	support, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || support < 0 {
		return Frequent{}, false
	}
	return Frequent{Key: key, Support: support}, true
}

// ParseCandidate parses a candidate-itemset artifact line (no support field)
// into its canonical key. ok is false for blank lines.
func ParseCandidate(line string) (string, bool) {
	key := KeyOf(strings.Fields(line))
	if key == "" {
		return "", false
	}
	return key, true
}
