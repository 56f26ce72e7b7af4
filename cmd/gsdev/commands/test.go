package commands

import (
	"github.com/spf13/cobra"

	"github.com/kmax12/gridstatusio/internal/domain"
)

func testCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Run the fast test suite, retrying flaky failures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(cmd, domain.TaskTest)
		},
	}
}

func testSlowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test-slow",
		Short: "Run only the slow-marked tests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(cmd, domain.TaskTestSlow)
		},
	}
}
