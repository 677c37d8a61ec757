package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/rota/internal/cli/formatter"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/importer"
)

// resolveAnalystID maps a name, full UUID, or UUID prefix to a single
// analyst ID.
func resolveAnalystID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("analyst is required")
	}

	analysts, err := app.Analysts.List(ctx, true)
	if err != nil {
		return "", err
	}

	for _, a := range analysts {
		if strings.EqualFold(a.Name, input) || a.ID == input {
			return a.ID, nil
		}
	}

	var matches []string
	for _, a := range analysts {
		if strings.HasPrefix(a.ID, input) {
			matches = append(matches, a.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("analyst not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("analyst %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newAnalystCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyst",
		Short: "Manage the analyst roster",
	}

	cmd.AddCommand(
		newAnalystAddCmd(app),
		newAnalystListCmd(app),
		newAnalystDeactivateCmd(app),
		newAnalystRemoveCmd(app),
		newAnalystImportCmd(app),
	)

	return cmd
}

func newAnalystAddCmd(app *App) *cobra.Command {
	var name, shift string
	var skills []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an analyst to the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := &domain.Analyst{
				Name:      name,
				ShiftType: domain.ShiftType(shift),
				Skills:    skills,
			}
			if err := app.Analysts.Create(context.Background(), a); err != nil {
				return err
			}
			fmt.Printf("Added analyst %s (%s)\n", a.Name, a.ShiftType)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Analyst name")
	cmd.Flags().StringVar(&shift, "shift", string(domain.ShiftMorning), "Shift type (MORNING, EVENING, WEEKEND)")
	cmd.Flags().StringSliceVar(&skills, "skills", nil, "Comma-separated skills")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newAnalystListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List analysts",
		RunE: func(cmd *cobra.Command, args []string) error {
			analysts, err := app.Analysts.List(context.Background(), all)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatAnalystList(analysts))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include deactivated analysts")
	return cmd
}

func newAnalystDeactivateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <analyst>",
		Short: "Remove an analyst from the candidate pool without deleting history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveAnalystID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Analysts.Deactivate(ctx, id); err != nil {
				return err
			}
			fmt.Println("Deactivated.")
			return nil
		},
	}
}

func newAnalystRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <analyst>",
		Short: "Delete an analyst and their schedules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveAnalystID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Analysts.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Println("Removed.")
			return nil
		},
	}
}

func newAnalystImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a roster (analysts, vacations, constraints) from JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := importer.LoadRosterFile(args[0])
			if err != nil {
				return err
			}
			if errs := importer.ValidateRosterSchema(schema); len(errs) > 0 {
				for _, e := range errs {
					fmt.Fprintf(cmd.ErrOrStderr(), "  - %v\n", e)
				}
				return fmt.Errorf("roster file has %d validation error(s)", len(errs))
			}

			roster, err := importer.Convert(schema)
			if err != nil {
				return err
			}

			ctx := context.Background()
			for _, a := range roster.Analysts {
				active := a.IsActive
				if err := app.Analysts.Create(ctx, a); err != nil {
					return fmt.Errorf("importing analyst %q: %w", a.Name, err)
				}
				// Create always activates; restore imported inactive flags.
				if !active {
					if err := app.Analysts.Deactivate(ctx, a.ID); err != nil {
						return fmt.Errorf("deactivating analyst %q: %w", a.Name, err)
					}
				}
			}
			for _, v := range roster.Vacations {
				if err := app.Vacations.Request(ctx, v); err != nil {
					return fmt.Errorf("importing vacation: %w", err)
				}
			}
			for _, c := range roster.Constraints {
				if err := app.Constraints.Create(ctx, c); err != nil {
					return fmt.Errorf("importing constraint: %w", err)
				}
			}

			fmt.Printf("Imported %d analyst(s), %d vacation(s), %d constraint(s)\n",
				len(roster.Analysts), len(roster.Vacations), len(roster.Constraints))
			return nil
		},
	}
}
