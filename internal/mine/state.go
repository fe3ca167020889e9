package mine

import "fmt"

// Phase is the orchestrator's position in the mining state machine.
type Phase string

const (
	PhaseInit       Phase = "INIT"
	PhaseCounting   Phase = "COUNTING"
	PhaseGenerating Phase = "GENERATING"
	PhaseTerminated Phase = "TERMINATED"
)

// TerminationReason records why a run stopped. Convergence paths are
// reported distinctly from the iteration-cap safety valve.
type TerminationReason string

const (
	// ReasonConverged: a counting round produced zero frequent itemsets.
	ReasonConverged TerminationReason = "converged"

	// ReasonNoCandidates: a generation round produced zero candidates.
	ReasonNoCandidates TerminationReason = "no-candidates"

	// ReasonIterationCap: the configured iteration cap was reached before
	// natural convergence.
	ReasonIterationCap TerminationReason = "iteration-cap"
)

// RoundState is the single-owner mutable progress state of a run. It is
// created at orchestrator start, mutated only at round transition points by
// the orchestrator goroutine, and never shared with worker tasks.
type RoundState struct {
	Phase         Phase
	Level         int
	Iteration     int
	TotalFrequent int
}

// NewRoundState returns the initial state: INIT at level 1.
func NewRoundState() RoundState {
	return RoundState{Phase: PhaseInit, Level: 1}
}

// Transition performs a validated phase transition. The caller supplies the
// expected prior phase so that any bookkeeping bug is observable instead of
// silently absorbed.
func (s *RoundState) Transition(from, to Phase) error {
	if s.Phase != from {
		return fmt.Errorf("invalid phase transition: expected %s, got %s", from, s.Phase)
	}
	if !isAllowedTransition(from, to) {
		return fmt.Errorf("disallowed phase transition: %s -> %s", from, to)
	}
	s.Phase = to
	return nil
}

func isAllowedTransition(from, to Phase) bool {
	switch from {
	case PhaseInit:
		return to == PhaseCounting
	case PhaseCounting:
		return to == PhaseGenerating || to == PhaseTerminated
	case PhaseGenerating:
		return to == PhaseCounting || to == PhaseTerminated
	default:
		return false
	}
}

// AdvanceRound moves the state to the next level after a completed
// counting+generation round.
func (s *RoundState) AdvanceRound() {
	s.Level++
	s.Iteration++
}
