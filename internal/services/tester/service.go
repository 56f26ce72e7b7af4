package tester

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kmax12/gridstatusio/internal/config"
	"github.com/kmax12/gridstatusio/internal/domain"
)

// Service runs pytest through the configured interpreter.
//
// The default partition excludes the slow marker and the slow partition
// selects exactly it, so no test can run under both modes.
type Service struct {
	workdir string
	python  string
	target  string
	marker  string
	workers string
	runner  domain.CommandRunner
	log     *logrus.Logger
}

var _ domain.Tester = (*Service)(nil)

// New returns a tester for the suite under target, a path relative to
// workdir.
func New(workdir, python, target string, cfg config.TestConfig, runner domain.CommandRunner, log *logrus.Logger) *Service {
	return &Service{
		workdir: workdir,
		python:  python,
		target:  target,
		marker:  cfg.SlowMarker,
		workers: cfg.Workers,
		runner:  runner,
		log:     log,
	}
}

// Invocation returns the pytest call for mode without running it.
//
// Output stays verbose and unbuffered: per-test lines, captured output
// disabled, PYTHONUNBUFFERED so progress appears as it happens.
func (s *Service) Invocation(mode domain.TestMode) domain.Invocation {
	expr := s.marker
	if mode != domain.TestSlow {
		expr = "not " + s.marker
	}
	return domain.Invocation{
		Tool: s.python,
		Args: []string{
			"-m", "pytest", "-s", "-vv", s.target,
			"-n", s.workers,
			"-m", expr,
		},
		Dir: s.workdir,
		Env: []string{"PYTHONUNBUFFERED=1"},
	}
}

// Run executes the suite for mode. Failures carry pytest's exit code.
func (s *Service) Run(ctx context.Context, mode domain.TestMode) error {
	iv := s.Invocation(mode)
	s.log.WithFields(logrus.Fields{
		"mode":    mode,
		"workers": s.workers,
	}).Info("running test suite")

	if err := s.runner.Run(ctx, iv); err != nil {
		return fmt.Errorf("%s tests: %w", mode, err)
	}
	return nil
}
