package service

import (
	"context"
	"time"

	"github.com/seanhalberthal/critpath/internal/db"
	"github.com/seanhalberthal/critpath/internal/domain"
	"github.com/seanhalberthal/critpath/internal/engine"
	"github.com/seanhalberthal/critpath/internal/repository"
)

type scheduleService struct {
	tasks        repository.TaskRepo
	deps         repository.DependencyRepo
	uow          db.UnitOfWork
	workingHours float64
}

func NewScheduleService(tasks repository.TaskRepo, deps repository.DependencyRepo, uow db.UnitOfWork, workingHoursPerDay float64) ScheduleService {
	return &scheduleService{
		tasks:        tasks,
		deps:         deps,
		uow:          uow,
		workingHours: workingHoursPerDay,
	}
}

func (s *scheduleService) Resolve(ctx context.Context, now time.Time) (*engine.Resolution, error) {
	snapshot, err := loadSnapshot(ctx, s.tasks, s.deps)
	if err != nil {
		return nil, err
	}
	return engine.Resolve(snapshot, now, s.workingHours), nil
}

func (s *scheduleService) Validate(ctx context.Context) error {
	snapshot, err := loadSnapshot(ctx, s.tasks, s.deps)
	if err != nil {
		return err
	}
	return engine.Validate(snapshot)
}

func (s *scheduleService) Schedule(ctx context.Context, opts engine.ScheduleOptions) (map[string]*engine.TaskSchedule, error) {
	snapshot, err := loadSnapshot(ctx, s.tasks, s.deps)
	if err != nil {
		return nil, err
	}
	if opts.WorkingHoursPerDay <= 0 {
		opts.WorkingHoursPerDay = s.workingHours
	}
	return engine.CalculateSchedule(snapshot, opts)
}

func (s *scheduleService) CriticalPath(ctx context.Context, opts engine.ScheduleOptions) (*engine.CriticalPathResult, error) {
	snapshot, err := loadSnapshot(ctx, s.tasks, s.deps)
	if err != nil {
		return nil, err
	}
	if opts.WorkingHoursPerDay <= 0 {
		opts.WorkingHoursPerDay = s.workingHours
	}
	return engine.FindCriticalPath(snapshot, opts)
}

func (s *scheduleService) CanStart(ctx context.Context, taskID string, now time.Time) (bool, error) {
	snapshot, err := loadSnapshot(ctx, s.tasks, s.deps)
	if err != nil {
		return false, err
	}
	return engine.CanStart(snapshot, taskID, now), nil
}

// AutoSchedule is the write-back consumer of the engine's earliest starts:
// the engine computes, this service applies the results to task copies and
// persists the batch atomically. Done tasks keep their dates.
func (s *scheduleService) AutoSchedule(ctx context.Context, now time.Time) (int, error) {
	snapshot, err := loadSnapshot(ctx, s.tasks, s.deps)
	if err != nil {
		return 0, err
	}
	if err := engine.Validate(snapshot); err != nil {
		return 0, err
	}

	resolution := engine.Resolve(snapshot, now, s.workingHours)

	updated := 0
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		for _, t := range resolution.OrderedTasks {
			if t.Status == domain.TaskDone {
				continue
			}
			start, ok := resolution.EarliestStarts[t.ID]
			if !ok {
				continue
			}
			end := domain.AddDays(start, t.DurationDays(s.workingHours))

			scheduled := *t
			scheduled.StartDate = &start
			scheduled.EndDate = &end
			scheduled.UpdatedAt = time.Now().UTC()
			if err := txTasks.Update(ctx, &scheduled); err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}
