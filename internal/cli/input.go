// Package cli canonicalizes run configuration into a validated Invocation
// and executes mining runs with a semantic exit-code taxonomy.
package cli

import (
	"errors"
	"fmt"

	"freqmine/internal/engine"
	"freqmine/internal/mine"
)

const (
	ExitSuccess           = 0
	ExitStageFailure      = 1
	ExitInvalidInvocation = 2
	ExitConfigError       = 3
	ExitInternalError     = 4
)

// Invocation is the fully canonicalized description of a mining run. All
// configuration flows through here before any engine logic is invoked.
type Invocation struct {
	// Inputs are the transaction source files. At least one is required.
	Inputs []string

	// MinSupport is the absolute minimum support count. Zero means unset.
	MinSupport int

	// MinSupportFraction is the fractional threshold in (0, 1]. Zero means
	// unset. Mutually exclusive with MinSupport; if neither is set a
	// default fraction of 0.5 applies.
	MinSupportFraction float64

	// ExecutionMode selects the backend.
	ExecutionMode engine.Mode

	// Workers bounds the local-cluster worker pool. Zero selects a
	// runtime-derived default.
	Workers int

	// MaxIterations caps the number of mining rounds.
	MaxIterations int

	// OutputDir is the artifact base directory.
	OutputDir string

	// CleanPrevious removes prior outputs before the run.
	CleanPrevious bool

	// VerboseErrors enables per-record skip diagnostics.
	VerboseErrors bool
}

// InvocationError is a flag-level problem: the invocation could not be
// parsed at all.
type InvocationError struct {
	Message string
}

func (e *InvocationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// ConfigError is a semantic configuration problem: conflicting or
// out-of-range options. Always reported before any distributed work starts.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func configErrorf(format string, args ...any) error {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}

// Validate checks the invocation and applies defaults in place.
func (inv *Invocation) Validate() error {
	if len(inv.Inputs) == 0 {
		return configErrorf("at least one input source is required")
	}
	if inv.MinSupport < 0 {
		return configErrorf("minimum support must be > 0, got %d", inv.MinSupport)
	}
	if inv.MinSupport > 0 && inv.MinSupportFraction != 0 {
		return configErrorf("minimum support count and fraction are mutually exclusive; set exactly one")
	}
	if inv.MinSupportFraction != 0 && (inv.MinSupportFraction <= 0 || inv.MinSupportFraction > 1) {
		return configErrorf("minimum support fraction must be in (0, 1], got %v", inv.MinSupportFraction)
	}
	if inv.MinSupport == 0 && inv.MinSupportFraction == 0 {
		inv.MinSupportFraction = mine.DefaultMinSupportFraction
	}
	if inv.MaxIterations < 0 {
		return configErrorf("max iterations must be > 0, got %d", inv.MaxIterations)
	}
	if inv.MaxIterations == 0 {
		inv.MaxIterations = mine.DefaultMaxIterations
	}
	if inv.ExecutionMode == "" {
		inv.ExecutionMode = engine.ModeEmbedded
	}
	if inv.OutputDir == "" {
		inv.OutputDir = "."
	}
	return nil
}

// ExitCodeFor maps an error to the semantic exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var invErr *InvocationError
	if errors.As(err, &invErr) {
		return ExitInvalidInvocation
	}
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return ExitConfigError
	}
	var stageErr *mine.StageError
	if errors.As(err, &stageErr) {
		return ExitStageFailure
	}
	return ExitInternalError
}
