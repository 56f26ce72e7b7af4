package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/kmax12/gridstatusio/internal/config"
	"github.com/kmax12/gridstatusio/internal/proc"
	cleanersvc "github.com/kmax12/gridstatusio/internal/services/cleaner"
	depssvc "github.com/kmax12/gridstatusio/internal/services/deps"
	docssvc "github.com/kmax12/gridstatusio/internal/services/docs"
	lintersvc "github.com/kmax12/gridstatusio/internal/services/linter"
	packagersvc "github.com/kmax12/gridstatusio/internal/services/packager"
	testersvc "github.com/kmax12/gridstatusio/internal/services/tester"
	"github.com/kmax12/gridstatusio/internal/store"
	"github.com/kmax12/gridstatusio/internal/workflow"
)

// New constructs the dependency graph from cfg: configuration, logger,
// command runner, services, task registry and engine.
func New(cfg Config) (*App, error) {
	workdir := cfg.Workdir
	if workdir == "" {
		workdir = "."
	}
	abs, err := filepath.Abs(workdir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("workdir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("workdir %s is not a directory", abs)
	}

	fileCfg, err := config.Load(abs, cfg.ConfigFile)
	if err != nil {
		return nil, err
	}
	log, err := newLogger(fileCfg.Logging, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	runner := proc.NewRunner(log)
	reports := store.NewReportStore(abs)

	a := &App{
		Workdir:  abs,
		Config:   fileCfg,
		Log:      log,
		Reports:  reports,
		Cleaner:  cleanersvc.New(abs, fileCfg.Clean, log),
		Deps:     depssvc.New(abs, fileCfg.Python.Interpreter, fileCfg.Tools.PreCommit, runner, log),
		Linter:   lintersvc.New(abs, fileCfg.Tools.Ruff, fileCfg.Project.PackageDir, runner, log),
		Tester:   testersvc.New(abs, fileCfg.Python.Interpreter, fileCfg.Project.PackageDir, fileCfg.Test, runner, log),
		Packager: packagersvc.New(abs, fileCfg.Python.Interpreter, fileCfg.Project, runner, log),
		Docs:     docssvc.New(abs, fileCfg.Tools.Sphinx, fileCfg.Project.DocsDir, runner, log),
	}

	reg, err := a.buildRegistry()
	if err != nil {
		return nil, err
	}
	a.Registry = reg
	a.Engine = workflow.New(reg, log, reports, cfg.DryRun)
	return a, nil
}

// newLogger builds the process logger. gsdev logs go to stderr so stdout
// stays the channel of the invoked tools.
func newLogger(cfg config.LoggingConfig, levelOverride, formatOverride string) (*logrus.Logger, error) {
	level := cfg.Level
	if levelOverride != "" {
		level = levelOverride
	}
	format := cfg.Format
	if formatOverride != "" {
		format = formatOverride
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)

	lv, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(lv)

	switch format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return log, nil
}
