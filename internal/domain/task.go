package domain

import "time"

// Task is a schedulable work item. The scheduling engine treats tasks as
// immutable input; computed dates are returned separately and applied by
// constructing updated copies.
type Task struct {
	ID     string
	Title  string
	Status TaskStatus

	// Explicit dates. When both are set, duration is derived from their
	// difference; otherwise EstimatedHours is used.
	StartDate *time.Time
	EndDate   *time.Time

	// EstimatedHours is the effort estimate used to derive duration when
	// explicit dates are absent.
	EstimatedHours float64

	// Progress is the completion percentage in [0, 100].
	Progress float64

	// Dependencies lists the predecessors this task waits on, in the order
	// they were declared.
	Dependencies []Dependency

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Dependency links a task to one of its predecessors.
type Dependency struct {
	// TaskID is the id of the predecessor task.
	TaskID string

	Type DependencyType

	// LagDays is added to the computed constraint. Negative values represent
	// lead time.
	LagDays float64
}
