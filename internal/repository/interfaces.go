package repository

import (
	"context"

	"github.com/seanhalberthal/critpath/internal/domain"
)

// Edge is a stored dependency row linking a predecessor to its successor.
// The engine-facing domain.Dependency hangs off the successor task; Edge is
// the flat persistence shape.
type Edge struct {
	PredecessorID string
	SuccessorID   string
	Type          domain.DependencyType
	LagDays       float64
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

type DependencyRepo interface {
	Create(ctx context.Context, e Edge) error
	Delete(ctx context.Context, predecessorID, successorID string) error
	ListAll(ctx context.Context) ([]Edge, error)
	ListBySuccessor(ctx context.Context, successorID string) ([]Edge, error)
	ListByPredecessor(ctx context.Context, predecessorID string) ([]Edge, error)
}
