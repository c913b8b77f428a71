package service

import (
	"context"
	"fmt"

	"github.com/seanhalberthal/critpath/internal/domain"
	"github.com/seanhalberthal/critpath/internal/engine"
	"github.com/seanhalberthal/critpath/internal/repository"
)

type dependencyService struct {
	tasks repository.TaskRepo
	deps  repository.DependencyRepo
}

func NewDependencyService(tasks repository.TaskRepo, deps repository.DependencyRepo) DependencyService {
	return &dependencyService{tasks: tasks, deps: deps}
}

func (s *dependencyService) Add(ctx context.Context, successorID, predecessorID string, depType domain.DependencyType, lagDays float64) error {
	if successorID == predecessorID {
		return fmt.Errorf("task %s cannot depend on itself", successorID)
	}
	if _, err := domain.ParseDependencyType(string(depType)); err != nil {
		return err
	}
	if _, err := s.tasks.GetByID(ctx, successorID); err != nil {
		return fmt.Errorf("successor %s: %w", successorID, err)
	}
	if _, err := s.tasks.GetByID(ctx, predecessorID); err != nil {
		return fmt.Errorf("predecessor %s: %w", predecessorID, err)
	}

	// Acyclicity invariant: vet the candidate edge against the full snapshot
	// before committing it.
	snapshot, err := loadSnapshot(ctx, s.tasks, s.deps)
	if err != nil {
		return err
	}
	if engine.WouldCreateCycle(snapshot, successorID, predecessorID) {
		return fmt.Errorf("dependency %s -> %s would create a cycle", predecessorID, successorID)
	}

	return s.deps.Create(ctx, repository.Edge{
		PredecessorID: predecessorID,
		SuccessorID:   successorID,
		Type:          depType,
		LagDays:       lagDays,
	})
}

func (s *dependencyService) Remove(ctx context.Context, successorID, predecessorID string) error {
	return s.deps.Delete(ctx, predecessorID, successorID)
}

func (s *dependencyService) Predecessors(ctx context.Context, taskID string) ([]string, error) {
	edges, err := s.deps.ListBySuccessor(ctx, taskID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.PredecessorID)
	}
	return ids, nil
}

func (s *dependencyService) Successors(ctx context.Context, taskID string) ([]string, error) {
	edges, err := s.deps.ListByPredecessor(ctx, taskID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.SuccessorID)
	}
	return ids, nil
}
