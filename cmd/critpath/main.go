package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/seanhalberthal/critpath/internal/cli"
	"github.com/seanhalberthal/critpath/internal/config"
	"github.com/seanhalberthal/critpath/internal/db"
	"github.com/seanhalberthal/critpath/internal/repository"
	"github.com/seanhalberthal/critpath/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// lipgloss honors NO_COLOR; force it when styling is off or output is piped.
	if !cfg.Color || !(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())) {
		_ = os.Setenv("NO_COLOR", "1")
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	taskRepo := repository.NewSQLiteTaskRepo(database)
	depRepo := repository.NewSQLiteDependencyRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Tasks:    service.NewTaskService(taskRepo, depRepo),
		Deps:     service.NewDependencyService(taskRepo, depRepo),
		Schedule: service.NewScheduleService(taskRepo, depRepo, uow, cfg.WorkingHoursPerDay),
		Import:   service.NewImportService(uow),
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
