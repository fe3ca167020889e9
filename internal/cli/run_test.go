package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"freqmine/internal/engine"
)

func writeTransactions(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.txt")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return path
}

func TestExecute_EndToEnd(t *testing.T) {
	input := writeTransactions(t,
		"t1\tbread milk",
		"t2\tbread butter",
		"t3\tbread milk butter",
		"t4\tmilk butter",
	)
	outDir := t.TempDir()

	var out bytes.Buffer
	result, err := Execute(context.Background(), Invocation{
		Inputs:     []string{input},
		MinSupport: 2,
		OutputDir:  outDir,
	}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ExitCode != ExitSuccess {
		t.Fatalf("expected success, got %d", result.ExitCode)
	}
	if result.Report.TotalFrequent != 6 {
		t.Fatalf("expected 6 frequent itemsets, got %d", result.Report.TotalFrequent)
	}

	rendered := out.String()
	if !strings.Contains(rendered, "terminated: converged") {
		t.Fatalf("report must state convergence:\n%s", rendered)
	}
	if !strings.Contains(rendered, "bread milk\t2") {
		t.Fatalf("report must list frequent itemsets:\n%s", rendered)
	}

	consolidated := filepath.Join(outDir, "frequent-itemsets", "frequent_itemsets.txt")
	if _, err := os.Stat(consolidated); err != nil {
		t.Fatalf("expected consolidated artifact: %v", err)
	}
}

func TestExecute_LocalClusterMode(t *testing.T) {
	input := writeTransactions(t,
		"t1\tbread milk",
		"t2\tbread butter",
		"t3\tbread milk butter",
		"t4\tmilk butter",
	)

	result, err := Execute(context.Background(), Invocation{
		Inputs:        []string{input},
		MinSupport:    2,
		ExecutionMode: engine.ModeLocalCluster,
		Workers:       3,
		OutputDir:     t.TempDir(),
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Report.TotalFrequent != 6 {
		t.Fatalf("expected 6 frequent itemsets, got %d", result.Report.TotalFrequent)
	}
}

func TestExecute_ConflictingThresholds(t *testing.T) {
	result, err := Execute(context.Background(), Invocation{
		Inputs:             []string{"whatever.txt"},
		MinSupport:         2,
		MinSupportFraction: 0.4,
	}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if result.ExitCode != ExitConfigError {
		t.Fatalf("expected exit %d, got %d", ExitConfigError, result.ExitCode)
	}
}

func TestExecute_RemoteClusterUnavailable(t *testing.T) {
	result, err := Execute(context.Background(), Invocation{
		Inputs:        []string{"whatever.txt"},
		MinSupport:    2,
		ExecutionMode: engine.ModeRemoteCluster,
	}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if result.ExitCode != ExitConfigError {
		t.Fatalf("expected exit %d, got %d", ExitConfigError, result.ExitCode)
	}
}

func TestExecute_MissingInputIsConfigError(t *testing.T) {
	result, err := Execute(context.Background(), Invocation{
		Inputs:     []string{filepath.Join(t.TempDir(), "absent.txt")},
		MinSupport: 2,
		OutputDir:  t.TempDir(),
	}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if result.ExitCode != ExitConfigError {
		t.Fatalf("expected exit %d, got %d", ExitConfigError, result.ExitCode)
	}
}

func TestExecute_EmptyInputConvergesCleanly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := Execute(context.Background(), Invocation{
		Inputs:     []string{path},
		MinSupport: 2,
		OutputDir:  t.TempDir(),
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ExitCode != ExitSuccess || result.Report.TotalFrequent != 0 {
		t.Fatalf("expected clean empty convergence, got %+v", result)
	}
}

func TestExecute_CleanPreviousOutputs(t *testing.T) {
	input := writeTransactions(t, "t1\tbread milk", "t2\tbread milk")
	outDir := t.TempDir()

	stale := filepath.Join(outDir, "frequent-itemsets", "frequent_itemsets_9.txt")
	if err := os.MkdirAll(filepath.Dir(stale), 0o755); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := os.WriteFile(stale, []byte("stale\t1\n"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := Execute(context.Background(), Invocation{
		Inputs:        []string{input},
		MinSupport:    2,
		OutputDir:     outDir,
		CleanPrevious: true,
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("expected stale artifact removed, stat err=%v", err)
	}
}
