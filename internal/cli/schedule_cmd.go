package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/seanhalberthal/critpath/internal/cli/formatter"
	"github.com/seanhalberthal/critpath/internal/engine"
)

func newOrderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "order",
		Short: "Show tasks in dependency order with earliest start dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Schedule.Resolve(context.Background(), time.Now().UTC())
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatResolution(res))
			return nil
		},
	}
}

func newValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the dependency graph for cycles and broken references",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := app.Schedule.Validate(context.Background())
			fmt.Printf("%s\n", formatter.FormatValidation(err))
			if err != nil {
				// Non-zero exit without repeating the formatted report.
				cmd.SilenceErrors = true
				cmd.SilenceUsage = true
			}
			return err
		},
	}
}

func scheduleOptions(cmd *cobra.Command, start string, hours float64) (engine.ScheduleOptions, error) {
	var opts engine.ScheduleOptions
	if start != "" {
		d, err := time.Parse("2006-01-02", start)
		if err != nil {
			return opts, fmt.Errorf("invalid start date %q, expected YYYY-MM-DD: %w", start, err)
		}
		opts.ProjectStart = &d
	}
	if cmd.Flags().Changed("hours") {
		opts.WorkingHoursPerDay = hours
	}
	return opts, nil
}

func newScheduleCmd(app *App) *cobra.Command {
	var start string
	var hours float64

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Compute the full schedule (early/late dates, float, criticality)",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := scheduleOptions(cmd, start, hours)
			if err != nil {
				return err
			}
			schedules, err := app.Schedule.Schedule(context.Background(), opts)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatSchedule(schedules))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Project start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Working hours per day")

	return cmd
}

func newCriticalPathCmd(app *App) *cobra.Command {
	var start string
	var hours float64

	cmd := &cobra.Command{
		Use:   "critical-path",
		Short: "Show the critical path and slack summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := scheduleOptions(cmd, start, hours)
			if err != nil {
				return err
			}
			ctx := context.Background()
			result, err := app.Schedule.CriticalPath(ctx, opts)
			if err != nil {
				return err
			}
			tasks, err := app.Tasks.List(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatCriticalPath(result, tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Project start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Working hours per day")

	return cmd
}

func newAutoScheduleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "autoschedule",
		Short: "Write computed earliest start/end dates back to tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			updated, err := app.Schedule.AutoSchedule(context.Background(), time.Now().UTC())
			if err != nil {
				return err
			}
			fmt.Printf("Scheduled %d tasks\n", updated)
			return nil
		},
	}
}

func newCanStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "can-start ID",
		Short: "Check whether a task's predecessors allow it to start now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			ok, err := app.Schedule.CanStart(ctx, taskID, time.Now().UTC())
			if err != nil {
				return err
			}
			if ok {
				fmt.Printf("Task %s can start\n", taskID)
			} else {
				fmt.Printf("Task %s is blocked by unfinished predecessors\n", taskID)
			}
			return nil
		},
	}
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import tasks and dependencies from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportTasks(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d tasks, %d dependencies\n", result.TaskCount, result.DependencyCount)
			return nil
		},
	}
}
