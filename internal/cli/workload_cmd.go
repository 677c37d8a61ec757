package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/rota/internal/cli/formatter"
)

func newWorkloadCmd(app *App) *cobra.Command {
	var analyst, week string
	var process bool

	cmd := &cobra.Command{
		Use:   "workload",
		Short: "Analyze an analyst's weekly workload",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveAnalystID(ctx, app, analyst)
			if err != nil {
				return err
			}
			weekStart, err := parseDate("week", week)
			if err != nil {
				return err
			}

			a, err := app.Analysts.GetByID(ctx, id)
			if err != nil {
				return err
			}

			report, err := app.Workloads.AnalyzeWeek(ctx, id, weekStart)
			if process {
				report, err = app.Workloads.ProcessOvertime(ctx, id, weekStart)
			}
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatWorkload(a.Name, report))
			return nil
		},
	}

	cmd.Flags().StringVar(&analyst, "analyst", "", "Analyst name or ID")
	cmd.Flags().StringVar(&week, "week", "", "Any date inside the week (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&process, "process-overtime", false, "Bank comp-off for detected overtime")
	_ = cmd.MarkFlagRequired("analyst")
	_ = cmd.MarkFlagRequired("week")

	return cmd
}
