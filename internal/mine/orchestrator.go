package mine

import (
	"context"
	"log/slog"

	"freqmine/internal/artifact"
	"freqmine/internal/engine"
	"freqmine/internal/itemset"
	"freqmine/internal/logging"
)

// Config carries the mining thresholds. Exactly one of MinSupport (> 0) and
// MinSupportFraction is active; when MinSupport is 0 the fraction is
// resolved to an absolute count at run start.
type Config struct {
	MinSupport         int
	MinSupportFraction float64
	MaxIterations      int
}

// DefaultMaxIterations bounds runaway or misconfigured runs.
const DefaultMaxIterations = 100

// Orchestrator drives the level-by-level mining loop: count supports at the
// current level, materialize the frequent artifact, generate candidates for
// the next level, materialize the candidate artifact, repeat until a round
// yields nothing or the iteration cap is reached.
//
// Execution is stage-sequential: a round never starts before the prior
// round's artifacts are fully materialized. The mutable RoundState is owned
// exclusively by the Run goroutine.
type Orchestrator struct {
	backend engine.Backend
	store   *artifact.Store
	cfg     Config
	log     *slog.Logger
}

// New builds an Orchestrator over an execution backend and artifact store.
func New(backend engine.Backend, store *artifact.Store, cfg Config) *Orchestrator {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	return &Orchestrator{
		backend: backend,
		store:   store,
		cfg:     cfg,
		log:     logging.New("orchestrator"),
	}
}

// Run executes the full mining loop over the transaction records and
// returns the consolidated report. Any stage failure aborts the run with a
// StageError; a retried run recomputes the affected level cleanly since
// every level artifact is deterministic given its inputs.
func (o *Orchestrator) Run(ctx context.Context, transactions []string) (*Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	state := NewRoundState()
	report := &Report{}

	minSupport, err := o.resolveMinSupport(ctx, transactions)
	if err != nil {
		return nil, err
	}
	report.MinSupport = minSupport
	o.log.Info("resolved minimum support", "min_support", minSupport)

	if err := state.Transition(PhaseInit, PhaseCounting); err != nil {
		return nil, err
	}

	for {
		frequent, err := o.countLevel(ctx, state.Level, minSupport, transactions)
		if err != nil {
			return nil, stageErr(StageCount, state.Level, err)
		}
		if err := o.store.WriteFrequent(state.Level, frequent); err != nil {
			return nil, stageErr(StageCount, state.Level, err)
		}
		round := RoundSummary{Level: state.Level, FrequentCount: len(frequent)}
		o.log.Info("counted supports", "level", state.Level, "frequent", len(frequent))

		if len(frequent) == 0 {
			report.Rounds = append(report.Rounds, round)
			if err := state.Transition(PhaseCounting, PhaseTerminated); err != nil {
				return nil, err
			}
			report.Reason = ReasonConverged
			break
		}
		state.TotalFrequent += len(frequent)
		report.Frequent = append(report.Frequent, frequent...)

		if err := state.Transition(PhaseCounting, PhaseGenerating); err != nil {
			return nil, err
		}

		candidates, err := o.generateLevel(ctx, state.Level, frequent)
		if err != nil {
			return nil, stageErr(StageGenerate, state.Level+1, err)
		}
		if err := o.store.WriteCandidates(state.Level+1, candidates); err != nil {
			return nil, stageErr(StageGenerate, state.Level+1, err)
		}
		round.CandidateCount = len(candidates)
		report.Rounds = append(report.Rounds, round)
		o.log.Info("generated candidates", "level", state.Level+1, "candidates", len(candidates))

		if len(candidates) == 0 {
			if err := state.Transition(PhaseGenerating, PhaseTerminated); err != nil {
				return nil, err
			}
			report.Reason = ReasonNoCandidates
			break
		}

		state.AdvanceRound()
		if state.Iteration >= o.cfg.MaxIterations {
			if err := state.Transition(PhaseGenerating, PhaseTerminated); err != nil {
				return nil, err
			}
			report.Reason = ReasonIterationCap
			o.log.Warn("iteration cap reached", "iterations", state.Iteration)
			break
		}

		if err := state.Transition(PhaseGenerating, PhaseCounting); err != nil {
			return nil, err
		}
	}

	report.TotalFrequent = state.TotalFrequent
	if err := o.store.WriteConsolidated(report.Frequent); err != nil {
		return nil, stageErr(StageCount, state.Level, err)
	}
	o.log.Info("run terminated", "reason", string(report.Reason), "total_frequent", state.TotalFrequent)
	return report, nil
}

func (o *Orchestrator) resolveMinSupport(ctx context.Context, transactions []string) (int, error) {
	if o.cfg.MinSupport > 0 {
		return o.cfg.MinSupport, nil
	}
	fraction := o.cfg.MinSupportFraction
	if fraction == 0 {
		fraction = DefaultMinSupportFraction
	}
	min, err := ResolveMinSupport(ctx, o.backend, fraction, transactions)
	if err != nil {
		return 0, stageErr(StageResolve, 0, err)
	}
	return min, nil
}

func (o *Orchestrator) countLevel(ctx context.Context, level, minSupport int, transactions []string) ([]itemset.Frequent, error) {
	var candidates []Candidate
	if level > 1 {
		lines, err := o.store.ReadCandidateLines(level)
		if err != nil {
			return nil, err
		}
		candidates = ParseCandidates(lines)
	}
	counter, err := NewSupportCounter(level, minSupport, candidates)
	if err != nil {
		return nil, err
	}
	return counter.Run(ctx, o.backend, transactions)
}

func (o *Orchestrator) generateLevel(ctx context.Context, level int, frequent []itemset.Frequent) ([]string, error) {
	if level == 1 {
		return Level2Candidates(frequent)
	}
	lines := make([]string, 0, len(frequent))
	for _, f := range frequent {
		lines = append(lines, itemset.FormatFrequent(f))
	}
	return GenerateCandidates(ctx, o.backend, level+1, lines)
}
