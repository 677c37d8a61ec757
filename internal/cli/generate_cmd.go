package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/rota/internal/cli/formatter"
	"github.com/alexanderramin/rota/internal/contract"
	"github.com/alexanderramin/rota/internal/domain"
)

func newGenerateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate schedules",
	}

	cmd.AddCommand(
		newGeneratePreviewCmd(app),
		newGenerateApplyCmd(app),
	)

	return cmd
}

func parseGenerationInput(start, end, algo string, overwrite bool) (contract.GenerationInput, error) {
	startDate, err := time.Parse(domain.DateLayout, start)
	if err != nil {
		return contract.GenerationInput{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	endDate, err := time.Parse(domain.DateLayout, end)
	if err != nil {
		return contract.GenerationInput{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}

	in := contract.NewGenerationInput(startDate, endDate, domain.AlgorithmType(algo))
	in.OverwriteExisting = overwrite
	return in, nil
}

func newGeneratePreviewCmd(app *App) *cobra.Command {
	var start, end, algo string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview a schedule without persisting anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := parseGenerationInput(start, end, algo, overwrite)
			if err != nil {
				return err
			}

			result, err := app.Generation.Preview(context.Background(), in)
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatGenerationResult(result))
			return nil
		},
	}

	addGenerateFlags(cmd, &start, &end, &algo, &overwrite)
	return cmd
}

func newGenerateApplyCmd(app *App) *cobra.Command {
	var start, end, algo string
	var overwrite, yes bool

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Generate a schedule and persist it",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := parseGenerationInput(start, end, algo, overwrite)
			if err != nil {
				return err
			}

			if !yes && app.IsInteractive != nil && app.IsInteractive() {
				preview, err := app.Generation.Preview(context.Background(), in)
				if err != nil {
					return err
				}
				fmt.Print(formatter.FormatGenerationResult(preview))

				var confirmed bool
				prompt := huh.NewConfirm().
					Title(fmt.Sprintf("Apply %d assignment(s)?", len(preview.ProposedSchedules))).
					Value(&confirmed)
				if err := huh.NewForm(huh.NewGroup(prompt)).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Aborted.")
					return nil
				}
			}

			result, err := app.Generation.Apply(context.Background(), in)
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatGenerationResult(result))
			return nil
		},
	}

	addGenerateFlags(cmd, &start, &end, &algo, &overwrite)
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}

func addGenerateFlags(cmd *cobra.Command, start, end, algo *string, overwrite *bool) {
	cmd.Flags().StringVar(start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(algo, "algorithm", string(domain.AlgorithmWeekendRotation), "Generation algorithm")
	cmd.Flags().BoolVar(overwrite, "overwrite", false, "Regenerate over existing schedules in range")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
}
