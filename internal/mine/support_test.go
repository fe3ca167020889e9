package mine

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"freqmine/internal/engine"
	"freqmine/internal/itemset"
)

var basketTransactions = []string{
	"t1\tbread milk",
	"t2\tbread butter",
	"t3\tbread milk butter",
	"t4\tmilk butter",
}

func mustCount(t *testing.T, level, minSupport int, candidates []Candidate, transactions []string) []itemset.Frequent {
	t.Helper()
	counter, err := NewSupportCounter(level, minSupport, candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	frequent, err := counter.Run(context.Background(), &engine.Embedded{}, transactions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return frequent
}

func TestSupportCounter_Level1(t *testing.T) {
	got := mustCount(t, 1, 2, nil, basketTransactions)
	want := []itemset.Frequent{
		{Key: "bread", Support: 3},
		{Key: "butter", Support: 3},
		{Key: "milk", Support: 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("frequent mismatch (-want +got):\n%s", diff)
	}
}

func TestSupportCounter_Level1_DuplicateItemsCountOnce(t *testing.T) {
	got := mustCount(t, 1, 1, nil, []string{"t1\tmilk milk milk"})
	want := []itemset.Frequent{{Key: "milk", Support: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("frequent mismatch (-want +got):\n%s", diff)
	}
}

func TestSupportCounter_Level2_SubsetMatching(t *testing.T) {
	candidates := ParseCandidates([]string{"bread milk", "bread butter", "milk butter", "bread eggs"})
	got := mustCount(t, 2, 2, candidates, basketTransactions)
	// "bread eggs" never matches and is filtered; result order is
	// canonical-key ascending.
	want := []itemset.Frequent{
		{Key: "bread butter", Support: 2},
		{Key: "bread milk", Support: 2},
		{Key: "butter milk", Support: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("frequent mismatch (-want +got):\n%s", diff)
	}
}

func TestSupportCounter_ThresholdBoundary(t *testing.T) {
	// Support exactly at the threshold is included; below is excluded.
	transactions := []string{"t1\ta b", "t2\ta", "t3\ta b", "t4\tb c"}
	got := mustCount(t, 1, 3, nil, transactions)
	want := []itemset.Frequent{
		{Key: "a", Support: 3},
		{Key: "b", Support: 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("frequent mismatch (-want +got):\n%s", diff)
	}
}

func TestSupportCounter_SkipsMalformedRecords(t *testing.T) {
	transactions := []string{
		"t1\tbread",
		"not a transaction",
		"t2\tbread\textra",
		"t3\tbread",
	}
	got := mustCount(t, 1, 1, nil, transactions)
	want := []itemset.Frequent{{Key: "bread", Support: 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("frequent mismatch (-want +got):\n%s", diff)
	}
}

func TestSupportCounter_ZeroValidTransactions(t *testing.T) {
	got := mustCount(t, 1, 1, nil, []string{"garbage", "more garbage"})
	if len(got) != 0 {
		t.Fatalf("expected no output, got %v", got)
	}
}

func TestSupportCounter_ShortTransactionContributesNothing(t *testing.T) {
	candidates := ParseCandidates([]string{"a b c"})
	got := mustCount(t, 3, 1, candidates, []string{"t1\ta b", "t2\ta b c"})
	want := []itemset.Frequent{{Key: "a b c", Support: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("frequent mismatch (-want +got):\n%s", diff)
	}
}

func TestSupportCounter_IdempotentRecomputation(t *testing.T) {
	candidates := ParseCandidates([]string{"bread milk", "bread butter", "milk butter"})
	first := mustCount(t, 2, 2, candidates, basketTransactions)
	second := mustCount(t, 2, 2, candidates, basketTransactions)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("recomputation diverged (-first +second):\n%s", diff)
	}
}

func TestSupportCounter_MonotonicNonIncrease(t *testing.T) {
	// support(A) >= support(B) for A subset of B.
	singles := mustCount(t, 1, 1, nil, basketTransactions)
	pairs := mustCount(t, 2, 1, ParseCandidates([]string{"bread milk", "bread butter", "milk butter"}), basketTransactions)

	singleSupport := make(map[string]int)
	for _, f := range singles {
		singleSupport[f.Key] = f.Support
	}
	for _, pair := range pairs {
		for _, item := range itemset.Items(pair.Key) {
			if singleSupport[item] < pair.Support {
				t.Fatalf("support(%q)=%d < support(%q)=%d", item, singleSupport[item], pair.Key, pair.Support)
			}
		}
	}
}

func TestParseCandidates_DedupesAndSkipsBlank(t *testing.T) {
	got := ParseCandidates([]string{"milk bread", "bread milk", "  ", "a b"})
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %v", got)
	}
	if got[0].Key != "bread milk" || got[1].Key != "a b" {
		t.Fatalf("unexpected candidates: %v", got)
	}
}

func TestNewSupportCounter_Validation(t *testing.T) {
	if _, err := NewSupportCounter(0, 1, nil); err == nil {
		t.Fatalf("expected level validation error")
	}
	if _, err := NewSupportCounter(1, -1, nil); err == nil {
		t.Fatalf("expected min-support validation error")
	}
}
