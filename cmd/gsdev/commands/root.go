package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kmax12/gridstatusio/internal/app"
	"github.com/kmax12/gridstatusio/internal/domain"
)

var (
	workdir    string
	configFile string
	dryRun     bool
	logLevel   string
	logFormat  string
	verbose    bool

	gs *app.App
)

// Execute runs the gsdev CLI under ctx.
func Execute(ctx context.Context) error {
	root := &cobra.Command{
		Use:          "gsdev",
		Short:        "Build, test and release workflow for the gridstatusio package",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := logLevel
			if verbose && level == "" {
				level = "debug"
			}
			a, err := app.New(app.Config{
				Workdir:    workdir,
				ConfigFile: configFile,
				DryRun:     dryRun,
				LogLevel:   level,
				LogFormat:  logFormat,
			})
			if err != nil {
				return err
			}
			gs = a
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&workdir, "workdir", "C", ".", "working tree the tasks operate on")
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default <workdir>/.gsdev.yaml)")
	root.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "log the execution plan without running anything")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "shorthand for --log-level debug")

	root.AddCommand(
		cleanCmd(),
		testCmd(), testSlowCmd(),
		installDepsDevCmd(), installDepsTestCmd(), installDepsDocsCmd(),
		lintCmd(), lintFixCmd(),
		upgradePipCmd(), upgradeBuildCmd(), upgradeSetuptoolsCmd(),
		packageCmd(), docsCmd(),
		tasksCmd(),
	)
	return root.ExecuteContext(ctx)
}

// runTask sends one registered target through the engine.
func runTask(cmd *cobra.Command, target domain.TaskName) error {
	_, err := gs.Engine.Run(cmd.Context(), target)
	return err
}
