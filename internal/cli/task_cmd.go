package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/seanhalberthal/critpath/internal/cli/formatter"
	"github.com/seanhalberthal/critpath/internal/domain"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskShowCmd(app),
		newTaskUpdateCmd(app),
		newTaskDoneCmd(app),
		newTaskProgressCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func parseDateFlag(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}
	return &d, nil
}

func newTaskAddCmd(app *App) *cobra.Command {
	var title, start, end string
	var hours, progress float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new task",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := parseDateFlag(start)
			if err != nil {
				return err
			}
			endDate, err := parseDateFlag(end)
			if err != nil {
				return err
			}

			t := &domain.Task{
				Title:          title,
				Status:         domain.TaskTodo,
				StartDate:      startDate,
				EndDate:        endDate,
				EstimatedHours: hours,
				Progress:       progress,
			}
			if err := app.Tasks.Create(context.Background(), t); err != nil {
				return err
			}

			fmt.Printf("Created task %s (%s)\n", t.Title, t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Estimated effort in hours")
	cmd.Flags().Float64Var(&progress, "progress", 0, "Completion percentage (0-100)")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Tasks.List(context.Background())
			if err != nil {
				return err
			}

			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatTaskList(tasks))
			return nil
		},
	}
}

func newTaskShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show task details",
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

			fmt.Printf("%s\n", formatter.FormatTaskDetail(t, successors))
			return nil
		},
	}
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var title, start, end, status string
	var hours float64

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a task",
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

			if cmd.Flags().Changed("title") {
				t.Title = title
			}
			if cmd.Flags().Changed("start") {
				t.StartDate, err = parseDateFlag(start)
				if err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("end") {
				t.EndDate, err = parseDateFlag(end)
				if err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("hours") {
				t.EstimatedHours = hours
			}
			if cmd.Flags().Changed("status") {
				parsed, err := domain.ParseTaskStatus(status)
				if err != nil {
					return err
				}
				t.Status = parsed
			}

			if err := app.Tasks.Update(ctx, t); err != nil {
				return err
			}

			fmt.Printf("Updated task %s\n", t.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Estimated effort in hours")
	cmd.Flags().StringVar(&status, "status", "", "Task status (todo|in_progress|done)")

	return cmd
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Mark a task as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.MarkDone(ctx, taskID); err != nil {
				return err
			}
			fmt.Printf("Marked task %s done\n", taskID)
			return nil
		},
	}
}

func newTaskProgressCmd(app *App) *cobra.Command {
	var progress float64

	cmd := &cobra.Command{
		Use:   "progress ID",
		Short: "Set task completion percentage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.SetProgress(ctx, taskID, progress); err != nil {
				return err
			}
			fmt.Printf("Set task %s progress to %.0f%%\n", taskID, progress)
			return nil
		},
	}

	cmd.Flags().Float64Var(&progress, "set", 0, "Completion percentage (0-100)")
	_ = cmd.MarkFlagRequired("set")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a task and its dependency edges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(ctx, taskID); err != nil {
				return err
			}
			fmt.Printf("Removed task %s\n", taskID)
			return nil
		},
	}
}
