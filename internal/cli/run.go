package cli

import (
	"context"
	"io"
	"runtime"

	"freqmine/internal/artifact"
	"freqmine/internal/engine"
	"freqmine/internal/logging"
	"freqmine/internal/mine"
)

// Result is the outcome of a run: the semantic exit code and, on success,
// the mining report.
type Result struct {
	ExitCode int
	Report   *mine.Report
}

// Execute validates the invocation, wires the backend and artifact store,
// and runs the mining orchestrator. The report is rendered to out.
func Execute(ctx context.Context, inv Invocation, out io.Writer) (Result, error) {
	logging.Init(inv.VerboseErrors, nil)

	if err := inv.Validate(); err != nil {
		return Result{ExitCode: ExitCodeFor(err)}, err
	}

	workers := inv.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	backend, err := engine.New(inv.ExecutionMode, workers)
	if err != nil {
		err = configErrorf("%v", err)
		return Result{ExitCode: ExitCodeFor(err)}, err
	}

	store, err := artifact.NewStore(inv.OutputDir)
	if err != nil {
		err = configErrorf("%v", err)
		return Result{ExitCode: ExitCodeFor(err)}, err
	}
	if inv.CleanPrevious {
		if err := store.Clean(); err != nil {
			err = configErrorf("clean previous outputs: %v", err)
			return Result{ExitCode: ExitCodeFor(err)}, err
		}
	}
	if err := store.EnsureLayout(); err != nil {
		err = configErrorf("%v", err)
		return Result{ExitCode: ExitCodeFor(err)}, err
	}

	transactions, err := artifact.LoadRecords(inv.Inputs...)
	if err != nil {
		err = configErrorf("read input sources: %v", err)
		return Result{ExitCode: ExitCodeFor(err)}, err
	}

	orch := mine.New(backend, store, mine.Config{
		MinSupport:         inv.MinSupport,
		MinSupportFraction: inv.MinSupportFraction,
		MaxIterations:      inv.MaxIterations,
	})
	report, err := orch.Run(ctx, transactions)
	if err != nil {
		return Result{ExitCode: ExitCodeFor(err)}, err
	}

	if out != nil {
		if err := report.Render(out); err != nil {
			return Result{ExitCode: ExitInternalError, Report: report}, err
		}
	}
	return Result{ExitCode: ExitSuccess, Report: report}, nil
}
