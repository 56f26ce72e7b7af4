package app

import (
	"context"

	"github.com/kmax12/gridstatusio/internal/domain"
	"github.com/kmax12/gridstatusio/internal/workflow"
)

// buildRegistry declares the task set. Dependencies are data here; the
// engine derives execution order from them, so no task body ever invokes
// another task.
func (a *App) buildRegistry() (*workflow.Registry, error) {
	retry := &workflow.RetryPolicy{
		Retries: a.Config.Test.Retries,
		Delay:   a.Config.Test.RetryDelay,
	}

	tasks := []*workflow.Task{
		{
			Name:    domain.TaskClean,
			Summary: "Remove bytecode, tool caches and coverage fragments",
			Run: func(ctx context.Context) error {
				removed, err := a.Cleaner.Clean(ctx)
				if err != nil {
					return err
				}
				a.Log.WithField("removed", removed).Info("working tree cleaned")
				return nil
			},
		},
		{
			Name:    domain.TaskTest,
			Summary: "Run the fast test suite, retrying flaky failures",
			Retry:   retry,
			Run: func(ctx context.Context) error {
				return a.Tester.Run(ctx, domain.TestDefault)
			},
		},
		{
			Name:    domain.TaskTestSlow,
			Summary: "Run only the slow-marked tests",
			Run: func(ctx context.Context) error {
				return a.Tester.Run(ctx, domain.TestSlow)
			},
		},
		{
			Name:    domain.TaskInstallDepsDev,
			Summary: "Install the package with dev extras and register pre-commit hooks",
			Run: func(ctx context.Context) error {
				return a.Deps.Install(ctx, domain.ExtrasDev)
			},
		},
		{
			Name:    domain.TaskInstallDepsTest,
			Summary: "Install the package with test extras",
			Run: func(ctx context.Context) error {
				return a.Deps.Install(ctx, domain.ExtrasTest)
			},
		},
		{
			Name:    domain.TaskInstallDepsDocs,
			Summary: "Install the package with docs extras",
			Run: func(ctx context.Context) error {
				return a.Deps.Install(ctx, domain.ExtrasDocs)
			},
		},
		{
			Name:    domain.TaskLint,
			Summary: "Check lint rules and formatting without modifying files",
			Run: func(ctx context.Context) error {
				return a.Linter.Check(ctx)
			},
		},
		{
			Name:    domain.TaskLintFix,
			Summary: "Apply auto-fixable lint rules and reformat",
			Run: func(ctx context.Context) error {
				return a.Linter.Fix(ctx)
			},
		},
		{
			Name:    domain.TaskUpgradePip,
			Summary: "Upgrade pip to its latest release",
			Run: func(ctx context.Context) error {
				return a.Packager.Upgrade(ctx, domain.ReqPip)
			},
		},
		{
			Name:    domain.TaskUpgradeBuild,
			Summary: "Upgrade the build frontend to its latest release",
			Run: func(ctx context.Context) error {
				return a.Packager.Upgrade(ctx, domain.ReqBuild)
			},
		},
		{
			Name:    domain.TaskUpgradeSetuptools,
			Summary: "Upgrade setuptools to its latest release",
			Run: func(ctx context.Context) error {
				return a.Packager.Upgrade(ctx, domain.ReqSetuptools)
			},
		},
		{
			Name:    domain.TaskPackage,
			Summary: "Build, verify and checksum the source distribution",
			Deps: []domain.TaskName{
				domain.TaskUpgradePip,
				domain.TaskUpgradeBuild,
				domain.TaskUpgradeSetuptools,
			},
			Run: func(ctx context.Context) error {
				_, err := a.Packager.Build(ctx)
				return err
			},
		},
		{
			Name:    domain.TaskDocs,
			Summary: "Render the HTML documentation into a clean tree",
			Deps:    []domain.TaskName{domain.TaskClean},
			Run: func(ctx context.Context) error {
				return a.Docs.Build(ctx)
			},
		},
	}

	reg := workflow.NewRegistry()
	for _, t := range tasks {
		if err := reg.Add(t); err != nil {
			return nil, err
		}
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}
