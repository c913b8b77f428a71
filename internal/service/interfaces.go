package service

import (
	"context"
	"time"

	"github.com/seanhalberthal/critpath/internal/domain"
	"github.com/seanhalberthal/critpath/internal/engine"
)

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	// List returns all tasks with their dependency lists attached.
	List(ctx context.Context) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	MarkDone(ctx context.Context, id string) error
	SetProgress(ctx context.Context, id string, progress float64) error
	Delete(ctx context.Context, id string) error
}

type DependencyService interface {
	// Add records "successor depends on predecessor". It refuses dangling
	// references, self-dependencies, and any edge that would close a cycle.
	Add(ctx context.Context, successorID, predecessorID string, depType domain.DependencyType, lagDays float64) error
	Remove(ctx context.Context, successorID, predecessorID string) error
	Predecessors(ctx context.Context, taskID string) ([]string, error)
	Successors(ctx context.Context, taskID string) ([]string, error)
}

type ScheduleService interface {
	Resolve(ctx context.Context, now time.Time) (*engine.Resolution, error)
	Validate(ctx context.Context) error
	Schedule(ctx context.Context, opts engine.ScheduleOptions) (map[string]*engine.TaskSchedule, error)
	CriticalPath(ctx context.Context, opts engine.ScheduleOptions) (*engine.CriticalPathResult, error)
	CanStart(ctx context.Context, taskID string, now time.Time) (bool, error)
	// AutoSchedule applies engine earliest starts to task copies and persists
	// them in one transaction. Returns the number of tasks updated.
	AutoSchedule(ctx context.Context, now time.Time) (int, error)
}

// ImportResult holds the outcome of a task set import.
type ImportResult struct {
	TaskCount       int
	DependencyCount int
}

type ImportService interface {
	ImportTasks(ctx context.Context, filePath string) (*ImportResult, error)
}
