package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/seanhalberthal/critpath/internal/domain"
	"github.com/seanhalberthal/critpath/internal/repository"
)

type taskService struct {
	tasks repository.TaskRepo
	deps  repository.DependencyRepo
}

func NewTaskService(tasks repository.TaskRepo, deps repository.DependencyRepo) TaskService {
	return &taskService{tasks: tasks, deps: deps}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = domain.TaskTodo
	}
	if t.Progress < 0 || t.Progress > 100 {
		return fmt.Errorf("progress must be within [0, 100], got %v", t.Progress)
	}
	return s.tasks.Create(ctx, t)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	edges, err := s.deps.ListBySuccessor(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		t.Dependencies = append(t.Dependencies, domain.Dependency{
			TaskID:  e.PredecessorID,
			Type:    e.Type,
			LagDays: e.LagDays,
		})
	}
	return t, nil
}

func (s *taskService) List(ctx context.Context) ([]*domain.Task, error) {
	return loadSnapshot(ctx, s.tasks, s.deps)
}

func (s *taskService) Update(ctx context.Context, t *domain.Task) error {
	if t.Progress < 0 || t.Progress > 100 {
		return fmt.Errorf("progress must be within [0, 100], got %v", t.Progress)
	}
	t.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, t)
}

func (s *taskService) MarkDone(ctx context.Context, id string) error {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	t.Status = domain.TaskDone
	t.Progress = 100
	t.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, t)
}

func (s *taskService) SetProgress(ctx context.Context, id string, progress float64) error {
	if progress < 0 || progress > 100 {
		return fmt.Errorf("progress must be within [0, 100], got %v", progress)
	}
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	t.Progress = progress
	if progress >= 100 {
		t.Status = domain.TaskDone
	} else if progress > 0 && t.Status == domain.TaskTodo {
		t.Status = domain.TaskInProgress
	}
	t.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, t)
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}
