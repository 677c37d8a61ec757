package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/rota/internal/domain"
)

func newVacationCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vacation",
		Short: "Record analyst vacations",
	}

	cmd.AddCommand(
		newVacationAddCmd(app),
		newVacationListCmd(app),
		newVacationRemoveCmd(app),
	)

	return cmd
}

func newVacationAddCmd(app *App) *cobra.Command {
	var analyst, start, end string
	var pending bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a vacation window",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveAnalystID(ctx, app, analyst)
			if err != nil {
				return err
			}
			startDate, err := parseDate("start", start)
			if err != nil {
				return err
			}
			endDate, err := parseDate("end", end)
			if err != nil {
				return err
			}

			v := &domain.Vacation{
				AnalystID:  id,
				StartDate:  startDate,
				EndDate:    endDate,
				IsApproved: !pending,
			}
			if err := app.Vacations.Request(ctx, v); err != nil {
				return err
			}
			fmt.Printf("Recorded vacation %s – %s\n", start, end)
			return nil
		},
	}

	cmd.Flags().StringVar(&analyst, "analyst", "", "Analyst name or ID")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&pending, "pending", false, "Record as not yet approved")
	_ = cmd.MarkFlagRequired("analyst")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newVacationListCmd(app *App) *cobra.Command {
	var analyst string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List an analyst's vacations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveAnalystID(ctx, app, analyst)
			if err != nil {
				return err
			}
			vacations, err := app.Vacations.ListByAnalyst(ctx, id)
			if err != nil {
				return err
			}
			if len(vacations) == 0 {
				fmt.Println("No vacations recorded.")
				return nil
			}
			for _, v := range vacations {
				status := "approved"
				if !v.IsApproved {
					status = "pending"
				}
				fmt.Printf("  %s  %s – %s  (%s)\n", v.ID[:8],
					v.StartDate.Format(domain.DateLayout), v.EndDate.Format(domain.DateLayout), status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&analyst, "analyst", "", "Analyst name or ID")
	_ = cmd.MarkFlagRequired("analyst")

	return cmd
}

func newVacationRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <vacation-id>",
		Short: "Delete a vacation record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Vacations.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Removed.")
			return nil
		},
	}
}
