package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kmax12/gridstatusio/internal/domain"
)

func tasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List build targets, their dependencies and last outcomes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			last := map[domain.TaskName]domain.TaskResult{}
			report, ok, err := gs.Reports.Load()
			if err != nil {
				gs.Log.WithError(err).Warn("could not read last run report")
			} else if ok {
				for _, res := range report.Tasks {
					last[res.Name] = res
				}
			}

			for _, name := range gs.Registry.Names() {
				t, _ := gs.Registry.Lookup(name)
				line := fmt.Sprintf("%-18s %s", name, t.Summary)
				if len(t.Deps) > 0 {
					plan, err := gs.Registry.Plan(name)
					if err != nil {
						return err
					}
					line += fmt.Sprintf(" (runs %s)", joinNames(plan, " -> "))
				}
				if res, hit := last[name]; hit {
					line += fmt.Sprintf(" [last: %s]", res.State)
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func joinNames(names []domain.TaskName, sep string) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return strings.Join(out, sep)
}
