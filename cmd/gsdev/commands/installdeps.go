package commands

import (
	"github.com/spf13/cobra"

	"github.com/kmax12/gridstatusio/internal/domain"
)

func installDepsDevCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "installdeps-dev",
		Short: "Install the package with dev extras and register pre-commit hooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(cmd, domain.TaskInstallDepsDev)
		},
	}
}

func installDepsTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "installdeps-test",
		Short: "Install the package with test extras",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(cmd, domain.TaskInstallDepsTest)
		},
	}
}

func installDepsDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "installdeps-docs",
		Short: "Install the package with docs extras",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(cmd, domain.TaskInstallDepsDocs)
		},
	}
}
