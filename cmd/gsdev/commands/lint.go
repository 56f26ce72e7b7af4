package commands

import (
	"github.com/spf13/cobra"

	"github.com/kmax12/gridstatusio/internal/domain"
)

func lintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Check lint rules and formatting without modifying files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(cmd, domain.TaskLint)
		},
	}
}

func lintFixCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint-fix",
		Short: "Apply auto-fixable lint rules and reformat",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(cmd, domain.TaskLintFix)
		},
	}
}
