package commands

import (
	"github.com/spf13/cobra"

	"github.com/kmax12/gridstatusio/internal/domain"
)

func packageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "package",
		Short: "Build, verify and checksum the source distribution",
		Long: `Build the source distribution with the packaging prerequisites upgraded
first. The built archive is located in the dist directory, cross-checked
against the declared package version, unpacked for inspection and
checksummed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(cmd, domain.TaskPackage)
		},
	}
}
