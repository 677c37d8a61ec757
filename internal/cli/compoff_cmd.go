package cli

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/rota/internal/cli/formatter"
)

func newCompOffCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compoff",
		Short: "Manage comp-off balances",
	}

	cmd.AddCommand(
		newCompOffBalanceCmd(app),
		newCompOffHistoryCmd(app),
		newCompOffBankCmd(app),
		newCompOffUseCmd(app),
	)

	return cmd
}

func newCompOffBalanceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <analyst>",
		Short: "Show an analyst's comp-off balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveAnalystID(ctx, app, args[0])
			if err != nil {
				return err
			}
			a, err := app.Analysts.GetByID(ctx, id)
			if err != nil {
				return err
			}
			balance, err := app.CompOffs.Balance(ctx, id)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatCompOffBalance(a.Name, balance))
			return nil
		},
	}
}

func newCompOffHistoryCmd(app *App) *cobra.Command {
	var analyst, start, end string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show comp-off ledger entries for a period",
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
			transactions, err := app.CompOffs.Transactions(ctx, id, startDate, endDate)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatCompOffHistory(transactions))
			return nil
		},
	}

	cmd.Flags().StringVar(&analyst, "analyst", "", "Analyst name or ID")
	cmd.Flags().StringVar(&start, "start", "", "Period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Period end (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("analyst")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newCompOffBankCmd(app *App) *cobra.Command {
	var analyst, week, amount, note string

	cmd := &cobra.Command{
		Use:   "bank",
		Short: "Bank comp-off days for an analyst",
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
			days, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}
			if err := app.CompOffs.Bank(ctx, id, days, weekStart, note); err != nil {
				return err
			}
			fmt.Printf("Banked %s day(s)\n", days)
			return nil
		},
	}

	addCompOffFlags(cmd, &analyst, &week, &amount, &note)
	return cmd
}

func newCompOffUseCmd(app *App) *cobra.Command {
	var analyst, week, amount, note string

	cmd := &cobra.Command{
		Use:   "use",
		Short: "Spend banked comp-off days",
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
			days, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}
			if err := app.CompOffs.Use(ctx, id, days, weekStart, note); err != nil {
				return err
			}
			fmt.Printf("Used %s day(s)\n", days)
			return nil
		},
	}

	addCompOffFlags(cmd, &analyst, &week, &amount, &note)
	return cmd
}

func addCompOffFlags(cmd *cobra.Command, analyst, week, amount, note *string) {
	cmd.Flags().StringVar(analyst, "analyst", "", "Analyst name or ID")
	cmd.Flags().StringVar(week, "week", "", "Week the days belong to (YYYY-MM-DD)")
	cmd.Flags().StringVar(amount, "days", "", "Number of days, fractions allowed (e.g. 0.5)")
	cmd.Flags().StringVar(note, "note", "", "Optional ledger note")
	_ = cmd.MarkFlagRequired("analyst")
	_ = cmd.MarkFlagRequired("week")
	_ = cmd.MarkFlagRequired("days")
}
