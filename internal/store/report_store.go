package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/kmax12/gridstatusio/internal/domain"
)

const (
	stateDir   = ".gsdev"
	reportFile = "last_run.json"
)

// ReportStore keeps the most recent run report under the working tree.
type ReportStore struct {
	dir string
	mu  sync.Mutex
}

// NewReportStore returns a store rooted at workdir/.gsdev.
func NewReportStore(workdir string) *ReportStore {
	return &ReportStore{dir: filepath.Join(workdir, stateDir)}
}

// Save writes the report, creating the state directory on demand. The
// previous report is replaced.
func (s *ReportStore) Save(report domain.RunReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return writeJSON(filepath.Join(s.dir, reportFile), report, 0o644)
}

// Load returns the last saved report. ok is false when none has been
// recorded yet.
func (s *ReportStore) Load() (report domain.RunReport, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(filepath.Join(s.dir, reportFile))
	if errors.Is(err, os.ErrNotExist) {
		return domain.RunReport{}, false, nil
	}
	if err != nil {
		return domain.RunReport{}, false, err
	}
	if err := json.Unmarshal(b, &report); err != nil {
		return domain.RunReport{}, false, fmt.Errorf("parsing %s: %w", reportFile, err)
	}
	return report, true, nil
}

// writeJSON writes v as indented JSON via a temp file, then atomically
// replaces the target.
func writeJSON(path string, v any, mode os.FileMode) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
