package mine

import (
	"errors"
	"fmt"
)

// ErrInconsistentArtifact marks a frequent-itemset artifact that lists the
// same itemset twice with conflicting support counts. This is surfaced as an
// explicit data error rather than resolved silently.
var ErrInconsistentArtifact = errors.New("inconsistent itemset artifact")

// Stage identifies which distributed computation failed.
type Stage string

const (
	StageResolve  Stage = "resolve-min-support"
	StageCount    Stage = "count-support"
	StageGenerate Stage = "generate-candidates"
)

// StageError wraps a fatal failure of one pipeline stage with enough
// context to identify the level and stage. Per-record skips never produce a
// StageError; this is reserved for failures that abort the whole run.
type StageError struct {
	Stage Stage
	Level int
	Err   error
}

func (e *StageError) Error() string {
	if e == nil {
		return ""
	}
	if e.Level > 0 {
		return fmt.Sprintf("stage %s failed at level %d: %v", e.Stage, e.Level, e.Err)
	}
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func stageErr(stage Stage, level int, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Level: level, Err: err}
}
