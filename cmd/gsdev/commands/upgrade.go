package commands

import (
	"github.com/spf13/cobra"

	"github.com/kmax12/gridstatusio/internal/domain"
)

func upgradePipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upgradepip",
		Short: "Upgrade pip to its latest release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(cmd, domain.TaskUpgradePip)
		},
	}
}

func upgradeBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upgradebuild",
		Short: "Upgrade the build frontend to its latest release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(cmd, domain.TaskUpgradeBuild)
		},
	}
}

func upgradeSetuptoolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upgradesetuptools",
		Short: "Upgrade setuptools to its latest release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(cmd, domain.TaskUpgradeSetuptools)
		},
	}
}
