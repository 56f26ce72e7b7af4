package deps

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/kmax12/gridstatusio/internal/domain"
)

const preCommitConfig = ".pre-commit-config.yaml"

// ErrUnknownExtras is returned for an extras group gsdev does not manage.
var ErrUnknownExtras = errors.New("unknown extras group")

// Service performs editable installs of the package plus one extras group.
type Service struct {
	workdir   string
	python    string
	precommit string
	runner    domain.CommandRunner
	log       *logrus.Logger
}

var _ domain.DepsInstaller = (*Service)(nil)

// New returns an installer running pip through the given interpreter.
func New(workdir, python, precommit string, runner domain.CommandRunner, log *logrus.Logger) *Service {
	return &Service{
		workdir:   workdir,
		python:    python,
		precommit: precommit,
		runner:    runner,
		log:       log,
	}
}

// Install runs the editable install for the extras group. For the dev group
// it then registers the pre-commit hooks; hook registration only happens
// once the install has succeeded.
func (s *Service) Install(ctx context.Context, extras domain.Extras) error {
	if !extras.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownExtras, extras)
	}

	s.log.WithField("extras", extras).Info("installing package")
	err := s.runner.Run(ctx, domain.Invocation{
		Tool: s.python,
		Args: []string{"-m", "pip", "install", "-e", fmt.Sprintf(".[%s]", extras)},
		Dir:  s.workdir,
	})
	if err != nil {
		return fmt.Errorf("installing %s extras: %w", extras, err)
	}

	if extras != domain.ExtrasDev {
		return nil
	}
	return s.registerHooks(ctx)
}

// registerHooks wires pre-commit into the local checkout. The hook config is
// parsed first so a missing or broken file fails with context instead of an
// opaque pre-commit traceback.
func (s *Service) registerHooks(ctx context.Context) error {
	repos, err := s.hookRepoCount()
	if err != nil {
		return err
	}
	s.log.WithField("hook_repos", repos).Info("registering pre-commit hooks")

	err = s.runner.Run(ctx, domain.Invocation{
		Tool: s.precommit,
		Args: []string{"install"},
		Dir:  s.workdir,
	})
	if err != nil {
		return fmt.Errorf("registering pre-commit hooks: %w", err)
	}
	return nil
}

func (s *Service) hookRepoCount() (int, error) {
	raw, err := os.ReadFile(filepath.Join(s.workdir, preCommitConfig))
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", preCommitConfig, err)
	}
	var cfg struct {
		Repos []struct {
			Repo string `yaml:"repo"`
		} `yaml:"repos"`
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return 0, fmt.Errorf("parsing %s: %w", preCommitConfig, err)
	}
	return len(cfg.Repos), nil
}
