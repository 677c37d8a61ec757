package cli

import (
	"github.com/spf13/cobra"

	"github.com/alexanderramin/rota/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Generation  service.GenerationService
	Analysts    service.AnalystService
	Schedules   service.ScheduleService
	Vacations   service.VacationService
	Constraints service.ConstraintService
	Workloads   service.WorkloadService
	CompOffs    service.CompOffService
	Fairness    service.FairnessService

	// IsInteractive reports whether stdin is a terminal; confirmation
	// prompts are skipped when it returns false.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "rota" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "rota",
		Short: "Analyst shift scheduler with weekend rotation and fairness tracking",
	}

	root.AddCommand(
		newGenerateCmd(app),
		newAnalystCmd(app),
		newScheduleCmd(app),
		newVacationCmd(app),
		newWorkloadCmd(app),
		newCompOffCmd(app),
		newFairnessCmd(app),
	)

	return root
}
