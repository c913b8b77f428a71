package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/seanhalberthal/critpath/internal/domain"
)

// TaskOption mutates a fixture task before it is returned.
type TaskOption func(*domain.Task)

func WithID(id string) TaskOption {
	return func(t *domain.Task) {
		t.ID = id
	}
}

func WithStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithDates(start, end time.Time) TaskOption {
	return func(t *domain.Task) {
		t.StartDate = &start
		t.EndDate = &end
	}
}

func WithStart(start time.Time) TaskOption {
	return func(t *domain.Task) {
		t.StartDate = &start
	}
}

func WithHours(hours float64) TaskOption {
	return func(t *domain.Task) {
		t.EstimatedHours = hours
	}
}

func WithProgress(progress float64) TaskOption {
	return func(t *domain.Task) {
		t.Progress = progress
	}
}

// DependsOn appends a finish-to-start dependency on the given predecessor.
func DependsOn(predecessorID string) TaskOption {
	return func(t *domain.Task) {
		t.Dependencies = append(t.Dependencies, domain.Dependency{
			TaskID: predecessorID,
			Type:   domain.FinishToStart,
		})
	}
}

// DependsOnTyped appends a dependency with an explicit type and lag.
func DependsOnTyped(predecessorID string, depType domain.DependencyType, lagDays float64) TaskOption {
	return func(t *domain.Task) {
		t.Dependencies = append(t.Dependencies, domain.Dependency{
			TaskID:  predecessorID,
			Type:    depType,
			LagDays: lagDays,
		})
	}
}

// NewTask builds a task fixture with sensible defaults: a fresh UUID,
// todo status, and an 8-hour estimate (one working day).
func NewTask(title string, opts ...TaskOption) *domain.Task {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t := &domain.Task{
		ID:             uuid.New().String(),
		Title:          title,
		Status:         domain.TaskTodo,
		EstimatedHours: 8,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
