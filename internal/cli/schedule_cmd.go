package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/rota/internal/cli/formatter"
	"github.com/alexanderramin/rota/internal/domain"
)

func parseDate(flag, value string) (time.Time, error) {
	d, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date %q: %w", flag, value, err)
	}
	return d, nil
}

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Inspect and edit persisted schedules",
	}

	cmd.AddCommand(
		newScheduleListCmd(app),
		newScheduleScreenerCmd(app),
		newScheduleShiftCmd(app),
		newScheduleRemoveCmd(app),
	)

	return cmd
}

func newScheduleListCmd(app *App) *cobra.Command {
	var start, end, analyst string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List schedules in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			startDate, err := parseDate("start", start)
			if err != nil {
				return err
			}
			endDate, err := parseDate("end", end)
			if err != nil {
				return err
			}

			var rows []*domain.Schedule
			if analyst != "" {
				id, err := resolveAnalystID(ctx, app, analyst)
				if err != nil {
					return err
				}
				rows, err = app.Schedules.ListAnalystRange(ctx, id, startDate, endDate)
				if err != nil {
					return err
				}
			} else {
				rows, err = app.Schedules.ListRange(ctx, startDate, endDate)
				if err != nil {
					return err
				}
			}

			names, err := analystNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatScheduleList(rows, names))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&analyst, "analyst", "", "Filter by analyst name or ID")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newScheduleScreenerCmd(app *App) *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:   "screener <schedule-id>",
		Short: "Toggle screener duty on a schedule entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Schedules.SetScreener(context.Background(), args[0], !off); err != nil {
				return err
			}
			fmt.Println("Updated.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&off, "off", false, "Clear screener duty instead of setting it")
	return cmd
}

func newScheduleShiftCmd(app *App) *cobra.Command {
	var shift string

	cmd := &cobra.Command{
		Use:   "shift <schedule-id>",
		Short: "Change the shift type of a schedule entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Schedules.SetShiftType(context.Background(), args[0], domain.ShiftType(shift)); err != nil {
				return err
			}
			fmt.Println("Updated.")
			return nil
		},
	}

	cmd.Flags().StringVar(&shift, "to", "", "New shift type (MORNING, EVENING, WEEKEND)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newScheduleRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <schedule-id>",
		Short: "Delete a schedule entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Schedules.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Removed.")
			return nil
		},
	}
}

func analystNames(ctx context.Context, app *App) (map[string]string, error) {
	analysts, err := app.Analysts.List(ctx, true)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(analysts))
	for _, a := range analysts {
		names[a.ID] = a.Name
	}
	return names, nil
}
