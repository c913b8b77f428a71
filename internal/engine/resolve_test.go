package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seanhalberthal/critpath/internal/domain"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
}

func hours(t *domain.Task, h float64) *domain.Task {
	t.EstimatedHours = h
	return t
}

func TestResolve_ChainEarliestStarts(t *testing.T) {
	// Three two-day tasks in a strict chain.
	tasks := []*domain.Task{
		hours(task("a"), 16),
		hours(task("b", fsDep("a")), 16),
		hours(task("c", fsDep("b")), 16),
	}

	res := Resolve(tasks, fixedNow(), 8)

	require.Empty(t, res.Cycles)
	assert.Equal(t, []string{"a", "b", "c"}, taskIDs(res.OrderedTasks))

	assert.Equal(t, fixedNow(), res.EarliestStarts["a"])
	assert.Equal(t, fixedNow().AddDate(0, 0, 2), res.EarliestStarts["b"])
	assert.Equal(t, fixedNow().AddDate(0, 0, 4), res.EarliestStarts["c"])

	// Every task on a single chain is critical.
	assert.Equal(t, []string{"a", "b", "c"}, res.CriticalPath)
}

func TestResolve_LagShiftsEarliestStart(t *testing.T) {
	tasks := []*domain.Task{
		hours(task("a"), 8),
		{
			ID: "b", Title: "b", Status: domain.TaskTodo, EstimatedHours: 8,
			Dependencies: []domain.Dependency{
				{TaskID: "a", Type: domain.FinishToStart, LagDays: 2},
			},
		},
	}

	res := Resolve(tasks, fixedNow(), 8)

	// One day of work plus two days of lag.
	assert.Equal(t, fixedNow().AddDate(0, 0, 3), res.EarliestStarts["b"])
}

func TestResolve_StartToStart(t *testing.T) {
	tasks := []*domain.Task{
		hours(task("a"), 40),
		{
			ID: "b", Title: "b", Status: domain.TaskTodo, EstimatedHours: 8,
			Dependencies: []domain.Dependency{
				{TaskID: "a", Type: domain.StartToStart, LagDays: 1},
			},
		},
	}

	res := Resolve(tasks, fixedNow(), 8)

	// b follows a's start, not its finish.
	assert.Equal(t, fixedNow().AddDate(0, 0, 1), res.EarliestStarts["b"])
}

func TestResolve_ExplicitStartDateWins(t *testing.T) {
	pinned := fixedNow().AddDate(0, 0, 10)
	a := hours(task("a"), 8)
	b := hours(task("b", fsDep("a")), 8)
	b.StartDate = &pinned

	res := Resolve([]*domain.Task{a, b}, fixedNow(), 8)

	// The pinned start is later than the dependency constraint, so it holds.
	assert.Equal(t, pinned, res.EarliestStarts["b"])
}

func TestResolve_CyclicGraphFallsBack(t *testing.T) {
	tasks := []*domain.Task{
		task("a", fsDep("b")),
		task("b", fsDep("a")),
	}

	res := Resolve(tasks, fixedNow(), 8)

	require.NotEmpty(t, res.Cycles)
	assert.Equal(t, []string{"a", "b"}, taskIDs(res.OrderedTasks), "input order preserved")
	assert.Empty(t, res.CriticalPath, "no critical path on a cyclic graph")
	assert.Len(t, res.EarliestStarts, 2, "best-effort dates still produced")
}

func TestResolve_EmptySnapshot(t *testing.T) {
	res := Resolve(nil, fixedNow(), 8)

	assert.Empty(t, res.OrderedTasks)
	assert.Empty(t, res.CriticalPath)
	assert.Empty(t, res.Cycles)
}

func TestValidate_CleanGraph(t *testing.T) {
	tasks := []*domain.Task{
		task("a"),
		task("b", fsDep("a")),
	}

	assert.NoError(t, Validate(tasks))
}

func TestValidate_MissingReference(t *testing.T) {
	tasks := []*domain.Task{
		task("a", fsDep("ghost")),
	}

	err := Validate(tasks)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, ErrKindMissing, vErr.Kind)
	assert.Equal(t, []string{"ghost"}, vErr.InvolvedIDs)
}

func TestValidate_MissingReportedBeforeCycle(t *testing.T) {
	// Both defects present: the dangling reference must win.
	tasks := []*domain.Task{
		task("a", fsDep("b")),
		task("b", fsDep("a"), fsDep("ghost")),
	}

	err := Validate(tasks)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, ErrKindMissing, vErr.Kind)
}

func TestValidate_InvalidDependencyType(t *testing.T) {
	tasks := []*domain.Task{
		task("a"),
		{
			ID: "b", Title: "b", Status: domain.TaskTodo, EstimatedHours: 8,
			Dependencies: []domain.Dependency{
				{TaskID: "a", Type: "blocks"},
			},
		},
	}

	err := Validate(tasks)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, ErrKindInvalid, vErr.Kind)
	assert.Equal(t, []string{"b"}, vErr.InvolvedIDs)
}

func TestValidate_SelfDependency(t *testing.T) {
	tasks := []*domain.Task{
		task("a", fsDep("a")),
	}

	err := Validate(tasks)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, ErrKindCircular, vErr.Kind)
	require.Len(t, vErr.Cycles, 1)
	assert.Equal(t, []string{"a", "a"}, vErr.Cycles[0])
}

func TestValidate_Cycle(t *testing.T) {
	tasks := []*domain.Task{
		task("a", fsDep("c")),
		task("b", fsDep("a")),
		task("c", fsDep("b")),
	}

	err := Validate(tasks)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, ErrKindCircular, vErr.Kind)
	assert.Equal(t, []string{"a", "b", "c"}, vErr.InvolvedIDs)
	require.NotEmpty(t, vErr.Cycles)

	var generic error = vErr
	assert.True(t, errors.As(generic, &vErr), "usable through errors.As")
}

func TestCanStart_FinishToStart(t *testing.T) {
	pred := task("pred")
	dependent := task("next", fsDep("pred"))
	tasks := []*domain.Task{pred, dependent}

	assert.False(t, CanStart(tasks, "next", fixedNow()), "predecessor not finished")

	pred.Progress = 100
	assert.True(t, CanStart(tasks, "next", fixedNow()))

	// A past end date counts as finished even without full progress.
	pred.Progress = 50
	past := fixedNow().AddDate(0, 0, -1)
	pred.EndDate = &past
	assert.True(t, CanStart(tasks, "next", fixedNow()))

	future := fixedNow().AddDate(0, 0, 1)
	pred.EndDate = &future
	assert.False(t, CanStart(tasks, "next", fixedNow()))
}

func TestCanStart_StartToStart(t *testing.T) {
	pred := task("pred")
	dependent := &domain.Task{
		ID: "next", Title: "next", Status: domain.TaskTodo, EstimatedHours: 8,
		Dependencies: []domain.Dependency{
			{TaskID: "pred", Type: domain.StartToStart},
		},
	}
	tasks := []*domain.Task{pred, dependent}

	assert.False(t, CanStart(tasks, "next", fixedNow()))

	pred.Progress = 10
	assert.True(t, CanStart(tasks, "next", fixedNow()), "any progress means the predecessor started")
}

func TestCanStart_FinishConstraintsDoNotBlock(t *testing.T) {
	pred := task("pred")
	dependent := &domain.Task{
		ID: "next", Title: "next", Status: domain.TaskTodo, EstimatedHours: 8,
		Dependencies: []domain.Dependency{
			{TaskID: "pred", Type: domain.FinishToFinish},
			{TaskID: "pred", Type: domain.StartToFinish},
		},
	}
	tasks := []*domain.Task{pred, dependent}

	assert.True(t, CanStart(tasks, "next", fixedNow()))
}

func TestCanStart_MissingPredecessor(t *testing.T) {
	tasks := []*domain.Task{
		task("a", fsDep("ghost")),
	}

	assert.False(t, CanStart(tasks, "a", fixedNow()))
}

func TestCanStart_UnknownTask(t *testing.T) {
	assert.False(t, CanStart(nil, "nope", fixedNow()))
}

func TestEngine_PredecessorsSuccessors(t *testing.T) {
	e := NewEngine(8)
	e.Rebuild([]*domain.Task{
		task("a"),
		task("b", fsDep("a")),
		task("c", fsDep("a")),
	})

	assert.ElementsMatch(t, []string{"b", "c"}, e.Successors("a"))
	assert.Equal(t, []string{"a"}, e.Predecessors("b"))
	assert.True(t, e.HasPath("a", "c"))
	assert.False(t, e.HasPath("b", "c"))
}
