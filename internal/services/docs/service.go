package docs

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/kmax12/gridstatusio/internal/domain"
)

// Service drives sphinx-build for the documentation source tree.
type Service struct {
	workdir string
	sphinx  string
	docsDir string
	runner  domain.CommandRunner
	log     *logrus.Logger
}

var _ domain.DocsBuilder = (*Service)(nil)

// New returns a docs builder for the sources under docsDir, a path relative
// to workdir.
func New(workdir, sphinx, docsDir string, runner domain.CommandRunner, log *logrus.Logger) *Service {
	return &Service{workdir: workdir, sphinx: sphinx, docsDir: docsDir, runner: runner, log: log}
}

// Build clears previous sphinx output, then renders HTML with build jobs
// auto-detected. Stale output goes first so removed pages cannot survive a
// rebuild.
func (s *Service) Build(ctx context.Context) error {
	out := filepath.Join(s.docsDir, "_build")

	s.log.WithField("docs_dir", s.docsDir).Info("building documentation")
	err := s.runner.Run(ctx, domain.Invocation{
		Tool: s.sphinx,
		Args: []string{"-M", "clean", s.docsDir, out},
		Dir:  s.workdir,
	})
	if err != nil {
		return fmt.Errorf("clearing stale docs: %w", err)
	}

	err = s.runner.Run(ctx, domain.Invocation{
		Tool: s.sphinx,
		Args: []string{"-M", "html", s.docsDir, out, "-j", "auto"},
		Dir:  s.workdir,
	})
	if err != nil {
		return fmt.Errorf("building docs: %w", err)
	}
	return nil
}
