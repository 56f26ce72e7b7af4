package linter

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kmax12/gridstatusio/internal/domain"
)

// Service runs ruff over the package source tree.
type Service struct {
	workdir string
	ruff    string
	target  string
	runner  domain.CommandRunner
	log     *logrus.Logger
}

var _ domain.Linter = (*Service)(nil)

// New returns a linter scoped to target, a path relative to workdir.
func New(workdir, ruff, target string, runner domain.CommandRunner, log *logrus.Logger) *Service {
	return &Service{workdir: workdir, ruff: ruff, target: target, runner: runner, log: log}
}

// Check runs the read-only gates: lint rules, then formatting drift. The
// first failing gate aborts; ruff's own output names the violations.
func (s *Service) Check(ctx context.Context) error {
	s.log.WithField("target", s.target).Info("linting")
	if err := s.run(ctx, "check", s.target); err != nil {
		return fmt.Errorf("lint check: %w", err)
	}
	if err := s.run(ctx, "format", "--check", s.target); err != nil {
		return fmt.Errorf("format check: %w", err)
	}
	return nil
}

// Fix applies every auto-fixable lint rule, then reformats in place.
func (s *Service) Fix(ctx context.Context) error {
	s.log.WithField("target", s.target).Info("fixing lint findings")
	if err := s.run(ctx, "check", "--fix", s.target); err != nil {
		return fmt.Errorf("lint fix: %w", err)
	}
	if err := s.run(ctx, "format", s.target); err != nil {
		return fmt.Errorf("format: %w", err)
	}
	return nil
}

func (s *Service) run(ctx context.Context, args ...string) error {
	return s.runner.Run(ctx, domain.Invocation{Tool: s.ruff, Args: args, Dir: s.workdir})
}
