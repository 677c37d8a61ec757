package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/rota/internal/cli/formatter"
)

func newFairnessCmd(app *App) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "fairness",
		Short: "Score the fairness of persisted schedules",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := parseDate("start", start)
			if err != nil {
				return err
			}
			endDate, err := parseDate("end", end)
			if err != nil {
				return err
			}

			metrics, err := app.Fairness.Report(context.Background(), startDate, endDate)
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatFairness(metrics))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
