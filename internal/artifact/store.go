// Package artifact persists the per-level mining artifacts:
//
//	<baseDir>/frequent-itemsets/frequent_itemsets_<k>.txt
//	<baseDir>/candidate-itemsets/candidate_itemsets_<k>.txt
//	<baseDir>/frequent-itemsets/frequent_itemsets.txt   (consolidated)
//
// Each level artifact is written once and treated as immutable afterwards.
// All writes are atomic (temp file + fsync + rename + directory sync), so an
// aborted run never leaves a partial artifact that a retry could mistake for
// authoritative output.
package artifact

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"freqmine/internal/itemset"
)

const (
	frequentDirName  = "frequent-itemsets"
	candidateDirName = "candidate-itemsets"
)

// Store manages the artifact layout under a base directory.
type Store struct {
	baseDir string
}

// NewStore creates a Store rooted at baseDir.
func NewStore(baseDir string) (*Store, error) {
	if strings.TrimSpace(baseDir) == "" {
		return nil, errors.New("baseDir is required")
	}
	return &Store{baseDir: baseDir}, nil
}

func (s *Store) frequentDir() string  { return filepath.Join(s.baseDir, frequentDirName) }
func (s *Store) candidateDir() string { return filepath.Join(s.baseDir, candidateDirName) }

// FrequentPath returns the level-k frequent-itemset artifact path.
func (s *Store) FrequentPath(level int) string {
	return filepath.Join(s.frequentDir(), fmt.Sprintf("frequent_itemsets_%d.txt", level))
}

// CandidatePath returns the level-k candidate-itemset artifact path.
func (s *Store) CandidatePath(level int) string {
	return filepath.Join(s.candidateDir(), fmt.Sprintf("candidate_itemsets_%d.txt", level))
}

// ConsolidatedPath returns the final consolidated result path.
func (s *Store) ConsolidatedPath() string {
	return filepath.Join(s.frequentDir(), "frequent_itemsets.txt")
}

// EnsureLayout creates the artifact directories.
func (s *Store) EnsureLayout() error {
	for _, dir := range []string{s.frequentDir(), s.candidateDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create artifact dir: %w", err)
		}
	}
	return nil
}

// Clean removes previous outputs, leaving empty artifact directories.
func (s *Store) Clean() error {
	for _, dir := range []string{s.frequentDir(), s.candidateDir()} {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("clean artifact dir: %w", err)
		}
	}
	return s.EnsureLayout()
}

// WriteFrequent materializes the level-k frequent-itemset artifact.
func (s *Store) WriteFrequent(level int, sets []itemset.Frequent) error {
	var b strings.Builder
	for _, f := range sets {
		b.WriteString(itemset.FormatFrequent(f))
		b.WriteByte('\n')
	}
	return writeAtomic(s.FrequentPath(level), []byte(b.String()))
}

// ReadFrequent loads the level-k frequent-itemset artifact. Malformed lines
// are skipped.
func (s *Store) ReadFrequent(level int) ([]itemset.Frequent, error) {
	lines, err := readLines(s.FrequentPath(level))
	if err != nil {
		return nil, err
	}
	out := make([]itemset.Frequent, 0, len(lines))
	for _, line := range lines {
		if f, ok := itemset.ParseFrequent(line); ok {
			out = append(out, f)
		}
	}
	return out, nil
}

// WriteCandidates materializes the level-k candidate artifact. Candidate
// lines carry no support count.
func (s *Store) WriteCandidates(level int, keys []string) error {
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('\n')
	}
	return writeAtomic(s.CandidatePath(level), []byte(b.String()))
}

// ReadCandidateLines loads the raw lines of the level-k candidate artifact.
func (s *Store) ReadCandidateLines(level int) ([]string, error) {
	return readLines(s.CandidatePath(level))
}

// WriteConsolidated materializes the final result artifact, one frequent
// itemset per line in the caller's order.
func (s *Store) WriteConsolidated(sets []itemset.Frequent) error {
	var b strings.Builder
	for _, f := range sets {
		b.WriteString(itemset.FormatFrequent(f))
		b.WriteByte('\n')
	}
	return writeAtomic(s.ConsolidatedPath(), []byte(b.String()))
}

// LoadRecords reads the lines of one or more input files, in file order.
// Blank lines are dropped; everything else is passed through for the
// mappers to validate.
func LoadRecords(paths ...string) ([]string, error) {
	var records []string
	for _, p := range paths {
		lines, err := readLines(p)
		if err != nil {
			return nil, err
		}
		records = append(records, lines...)
	}
	return records, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}

// writeAtomic writes data durably: temp file in the target directory,
// fsync, rename over the destination, then directory sync.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
