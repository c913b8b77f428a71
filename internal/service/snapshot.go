package service

import (
	"context"

	"github.com/seanhalberthal/critpath/internal/domain"
	"github.com/seanhalberthal/critpath/internal/repository"
)

// loadSnapshot assembles the engine's input: all tasks with their dependency
// lists attached, in stored declaration order.
func loadSnapshot(ctx context.Context, tasks repository.TaskRepo, deps repository.DependencyRepo) ([]*domain.Task, error) {
	list, err := tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	edges, err := deps.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	bySuccessor := make(map[string][]domain.Dependency)
	for _, e := range edges {
		bySuccessor[e.SuccessorID] = append(bySuccessor[e.SuccessorID], domain.Dependency{
			TaskID:  e.PredecessorID,
			Type:    e.Type,
			LagDays: e.LagDays,
		})
	}

	for _, t := range list {
		t.Dependencies = bySuccessor[t.ID]
	}
	return list, nil
}
