package cli

import (
	"github.com/seanhalberthal/critpath/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Tasks    service.TaskService
	Deps     service.DependencyService
	Schedule service.ScheduleService
	Import   service.ImportService
}

// NewRootCmd creates the top-level "critpath" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "critpath",
		Short: "Task dependency tracker and critical path scheduler",
	}

	root.AddCommand(
		newTaskCmd(app),
		newDepCmd(app),
		newOrderCmd(app),
		newValidateCmd(app),
		newScheduleCmd(app),
		newCriticalPathCmd(app),
		newAutoScheduleCmd(app),
		newCanStartCmd(app),
		newImportCmd(app),
	)

	return root
}
