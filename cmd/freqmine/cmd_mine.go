package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"freqmine/internal/cli"
	"freqmine/internal/engine"
)

var mineFlags struct {
	configPath    string
	minSupport    int
	fraction      float64
	mode          string
	workers       int
	maxIterations int
	outputDir     string
	clean         bool
	verboseErrors bool
}

var mineCmd = &cobra.Command{
	Use:   "mine [flags] <input>...",
	Short: "Mine frequent itemsets from transaction files",
	Long: "Mine runs the iterative Apriori loop over one or more transaction files\n" +
		"(one record per line: transaction_id<TAB>item1 item2 ...) and writes the\n" +
		"per-level and consolidated frequent-itemset artifacts.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true

		mode, err := engine.ParseMode(mineFlags.mode)
		if err != nil {
			exitWith(cli.ExitInvalidInvocation, err)
		}

		inv := cli.Invocation{
			Inputs:             args,
			MinSupport:         mineFlags.minSupport,
			MinSupportFraction: mineFlags.fraction,
			ExecutionMode:      mode,
			Workers:            mineFlags.workers,
			MaxIterations:      mineFlags.maxIterations,
			OutputDir:          mineFlags.outputDir,
			CleanPrevious:      mineFlags.clean,
			VerboseErrors:      mineFlags.verboseErrors,
		}

		if mineFlags.configPath != "" {
			cfg, err := cli.LoadConfig(mineFlags.configPath)
			if err != nil {
				exitWith(cli.ExitCodeFor(err), err)
			}
			if err := cfg.Apply(&inv, cmd.Flags().Changed); err != nil {
				exitWith(cli.ExitCodeFor(err), err)
			}
		}

		result, err := cli.Execute(cmd.Context(), inv, os.Stdout)
		if err != nil {
			exitWith(result.ExitCode, err)
		}
		return nil
	},
}

func exitWith(code int, err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(code)
}

func init() {
	f := mineCmd.Flags()
	f.StringVar(&mineFlags.configPath, "config", "", "YAML run configuration file")
	f.IntVar(&mineFlags.minSupport, "min-support", 0, "absolute minimum support count (> 0)")
	f.Float64Var(&mineFlags.fraction, "min-support-fraction", 0, "fractional minimum support in (0, 1]")
	f.StringVar(&mineFlags.mode, "mode", string(engine.ModeEmbedded), "execution mode: embedded|local-cluster|remote-cluster")
	f.IntVar(&mineFlags.workers, "workers", 0, "local-cluster worker count (0 = number of CPUs)")
	f.IntVar(&mineFlags.maxIterations, "max-iterations", 0, "iteration cap (0 = default 100)")
	f.StringVar(&mineFlags.outputDir, "output-dir", ".", "artifact output directory")
	f.BoolVar(&mineFlags.clean, "clean", false, "remove previous outputs before the run")
	f.BoolVar(&mineFlags.verboseErrors, "verbose-errors", false, "log per-record skip diagnostics")
}
