package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"freqmine/internal/engine"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
inputs:
  - transactions.txt
min_support: 4
execution_mode: local-cluster
workers: 8
max_iterations: 20
output_dir: out
clean_previous_outputs: true
verbose_errors: true
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &FileConfig{
		Inputs:        []string{"transactions.txt"},
		MinSupport:    4,
		ExecutionMode: "local-cluster",
		Workers:       8,
		MaxIterations: 20,
		OutputDir:     "out",
		CleanPrevious: true,
		VerboseErrors: true,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if ExitCodeFor(err) != ExitConfigError {
		t.Fatalf("expected config error classification, got %d", ExitCodeFor(err))
	}
}

func TestApply_FlagsTakePrecedence(t *testing.T) {
	cfg := &FileConfig{
		MinSupport:    4,
		ExecutionMode: "local-cluster",
		MaxIterations: 20,
	}
	inv := Invocation{
		Inputs:     []string{"cli.txt"},
		MinSupport: 7,
	}

	// Simulate --min-support given on the command line.
	set := func(name string) bool { return name == "min-support" }
	if err := cfg.Apply(&inv, set); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inv.MinSupport != 7 {
		t.Fatalf("flag value must win, got %d", inv.MinSupport)
	}
	if inv.ExecutionMode != engine.ModeLocalCluster {
		t.Fatalf("expected mode from config, got %q", inv.ExecutionMode)
	}
	if inv.MaxIterations != 20 {
		t.Fatalf("expected iterations from config, got %d", inv.MaxIterations)
	}
	if len(inv.Inputs) != 1 || inv.Inputs[0] != "cli.txt" {
		t.Fatalf("positional inputs must win, got %v", inv.Inputs)
	}
}

func TestApply_InvalidModeIsConfigError(t *testing.T) {
	cfg := &FileConfig{ExecutionMode: "hadoop"}
	inv := Invocation{}
	err := cfg.Apply(&inv, func(string) bool { return false })
	if err == nil || ExitCodeFor(err) != ExitConfigError {
		t.Fatalf("expected config error, got %v", err)
	}
}
