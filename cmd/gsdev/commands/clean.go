package commands

import (
	"github.com/spf13/cobra"

	"github.com/kmax12/gridstatusio/internal/domain"
)

func cleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove generated and cache artifacts from the working tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(cmd, domain.TaskClean)
		},
	}
}
