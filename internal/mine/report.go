package mine

import (
	"fmt"
	"io"

	"freqmine/internal/itemset"
)

// RoundSummary records what one level produced.
type RoundSummary struct {
	Level          int
	FrequentCount  int
	CandidateCount int
}

// Report is the consolidated result of a mining run.
type Report struct {
	// MinSupport is the absolute threshold the run used (post conversion
	// when a fraction was configured).
	MinSupport int

	// Reason is how the run terminated.
	Reason TerminationReason

	// Rounds summarizes each level in ascending order.
	Rounds []RoundSummary

	// TotalFrequent is the cumulative frequent-itemset count.
	TotalFrequent int

	// Frequent lists every frequent itemset found, ordered by level
	// ascending then canonical key ascending.
	Frequent []itemset.Frequent
}

// Converged reports whether termination was a natural convergence path
// rather than the iteration-cap safety valve.
func (r *Report) Converged() bool {
	return r.Reason == ReasonConverged || r.Reason == ReasonNoCandidates
}

// Render writes the human-readable run summary.
func (r *Report) Render(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "minimum support: %d\n", r.MinSupport); err != nil {
		return err
	}
	for _, round := range r.Rounds {
		if _, err := fmt.Fprintf(w, "level %d: %d frequent, %d candidates for next level\n",
			round.Level, round.FrequentCount, round.CandidateCount); err != nil {
			return err
		}
	}
	switch r.Reason {
	case ReasonIterationCap:
		fmt.Fprintf(w, "terminated: iteration cap reached before convergence\n")
	case ReasonNoCandidates:
		fmt.Fprintf(w, "terminated: converged, no further candidates\n")
	default:
		fmt.Fprintf(w, "terminated: converged\n")
	}
	if _, err := fmt.Fprintf(w, "frequent itemsets (%d):\n", r.TotalFrequent); err != nil {
		return err
	}
	for _, f := range r.Frequent {
		if _, err := fmt.Fprintln(w, itemset.FormatFrequent(f)); err != nil {
			return err
		}
	}
	return nil
}
