package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seanhalberthal/critpath/internal/cli/formatter"
	"github.com/seanhalberthal/critpath/internal/domain"
)

func newDepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "Manage task dependencies",
	}

	cmd.AddCommand(
		newDepAddCmd(app),
		newDepRemoveCmd(app),
		newDepListCmd(app),
	)

	return cmd
}

func newDepAddCmd(app *App) *cobra.Command {
	var depType string
	var lag float64

	cmd := &cobra.Command{
		Use:   "add TASK PREDECESSOR",
		Short: "Make TASK depend on PREDECESSOR",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			successorID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			predecessorID, err := resolveTaskID(ctx, app, args[1])
			if err != nil {
				return err
			}

			if err := app.Deps.Add(ctx, successorID, predecessorID, domain.DependencyType(depType), lag); err != nil {
				return err
			}

			fmt.Printf("Added dependency %s -> %s (%s", predecessorID, successorID, depType)
			if lag != 0 {
				fmt.Printf(", lag %+.1fd", lag)
			}
			fmt.Println(")")
			return nil
		},
	}

	cmd.Flags().StringVar(&depType, "type", string(domain.FinishToStart), "Dependency type (finish-to-start|start-to-start|finish-to-finish|start-to-finish)")
	cmd.Flags().Float64Var(&lag, "lag", 0, "Lag in days (negative for lead)")

	return cmd
}

func newDepRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove TASK PREDECESSOR",
		Short: "Remove the dependency of TASK on PREDECESSOR",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			successorID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			predecessorID, err := resolveTaskID(ctx, app, args[1])
			if err != nil {
				return err
			}

			if err := app.Deps.Remove(ctx, successorID, predecessorID); err != nil {
				return err
			}

			fmt.Printf("Removed dependency %s -> %s\n", predecessorID, successorID)
			return nil
		},
	}
}

func newDepListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list ID",
		Short: "List a task's predecessors and successors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tasks.GetByID(ctx, taskID)
			if err != nil {
				return err
			}
			successors, err := app.Deps.Successors(ctx, taskID)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatDependencies(t, successors))
			return nil
		},
	}
}
