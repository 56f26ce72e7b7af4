package cleaner

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/kmax12/gridstatusio/internal/config"
	"github.com/kmax12/gridstatusio/internal/domain"
)

// Service deletes bytecode, tool caches and coverage fragments.
//
// Deletion is idempotent: already-missing entries and an empty match set are
// success, so a second run over the same tree removes nothing and still
// succeeds.
type Service struct {
	workdir  string
	patterns []string
	dirs     []string
	log      *logrus.Logger
}

var _ domain.Cleaner = (*Service)(nil)

// New returns a cleaner for the working tree rooted at workdir. Patterns
// apply to file base names, dirs to directory base names.
func New(workdir string, cfg config.CleanConfig, log *logrus.Logger) *Service {
	return &Service{
		workdir:  workdir,
		patterns: cfg.FilePatterns,
		dirs:     cfg.DirNames,
		log:      log,
	}
}

// Clean walks the tree and deletes matches. Matched directories are removed
// whole and not descended into. The version-control directory is never
// entered. Returns the number of entries removed, a pruned directory
// counting once.
func (s *Service) Clean(ctx context.Context) (int, error) {
	removed := 0
	err := filepath.WalkDir(s.workdir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Tolerate entries deleted underneath the walk.
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if path == s.workdir {
			return nil
		}

		base := d.Name()
		if d.IsDir() {
			if base == ".git" {
				return filepath.SkipDir
			}
			if slices.Contains(s.dirs, base) {
				if err := s.remove(path, &removed); err != nil {
					return err
				}
				return filepath.SkipDir
			}
			return nil
		}
		if s.matchFile(base) {
			return s.remove(path, &removed)
		}
		return nil
	})
	if err != nil {
		return removed, err
	}
	s.log.WithField("removed", removed).Debug("clean finished")
	return removed, nil
}

func (s *Service) matchFile(base string) bool {
	for _, p := range s.patterns {
		// Patterns are validated at config load; Match cannot fail here.
		if ok, _ := filepath.Match(p, base); ok {
			return true
		}
	}
	return false
}

func (s *Service) remove(path string, removed *int) error {
	rel, err := filepath.Rel(s.workdir, path)
	if err != nil {
		rel = path
	}
	if err := os.RemoveAll(path); err != nil {
		return err
	}
	s.log.WithField("path", rel).Debug("removed")
	*removed++
	return nil
}
