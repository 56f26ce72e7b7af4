package commands

import (
	"github.com/spf13/cobra"

	"github.com/kmax12/gridstatusio/internal/domain"
)

func docsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "docs",
		Short: "Render the HTML documentation into a clean tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(cmd, domain.TaskDocs)
		},
	}
}
