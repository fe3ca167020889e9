package itemset

import "strings"

// Transaction is a single input record: an opaque identifier plus the
// distinct items it contains. Immutable once parsed.
type Transaction struct {
	// ID is the transaction identifier. Not interpreted by the miner.
	ID string

	// Items holds the transaction's item tokens in canonical order
	// (sorted, unique). Duplicate tokens in the input count once.
	Items []string
}

// ParseTransaction parses one transaction record line:
//
//	transaction_id<TAB>item1 item2 item3 ...
//
// ok is false for malformed lines (anything other than exactly two
// tab-separated fields). Malformed records are skipped by callers, never
// treated as fatal.
func ParseTransaction(line string) (Transaction, bool) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return Transaction{}, false
	}
	parts := strings.Split(line, FieldSeparator)
	if len(parts) != 2 {
		return Transaction{}, false
	}
	id := strings.TrimSpace(parts[0])
	if id == "" {
		return Transaction{}, false
	}
	return Transaction{ID: id, Items: Canonical(strings.Fields(parts[1]))}, true
}
