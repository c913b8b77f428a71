package engine

import (
	"sort"
	"time"

	"github.com/seanhalberthal/critpath/internal/domain"
)

// Engine resolves dependency order and schedules for a task snapshot. It
// caches the adjacency graph built by Rebuild for O(1) predecessor/successor
// queries and incremental cycle checks; everything else is computed fresh per
// call. The engine never mutates task records.
//
// An Engine instance belongs to a single logical scheduling session. Callers
// sharing a mutable task collection across goroutines must synchronize their
// reads before invoking Rebuild; the engine assumes the snapshot does not
// change for the duration of one call.
type Engine struct {
	workingHours float64
	tasks        map[string]*domain.Task
	list         []*domain.Task
	graph        *Graph
}

// NewEngine creates an engine. workingHoursPerDay converts estimated hours
// to days; zero or negative selects the default.
func NewEngine(workingHoursPerDay float64) *Engine {
	if workingHoursPerDay <= 0 {
		workingHoursPerDay = domain.DefaultWorkingHoursPerDay
	}
	return &Engine{
		workingHours: workingHoursPerDay,
		tasks:        make(map[string]*domain.Task),
		graph:        NewGraph(),
	}
}

// Rebuild replaces the engine's task snapshot and rebuilds the adjacency
// graph. The internal maps are read-only until the next Rebuild.
func (e *Engine) Rebuild(tasks []*domain.Task) {
	e.list = append([]*domain.Task(nil), tasks...)
	e.tasks = make(map[string]*domain.Task, len(tasks))
	for _, t := range tasks {
		e.tasks[t.ID] = t
	}
	e.graph = BuildGraph(e.list)
}

// Predecessors returns the ids the given task directly depends on.
func (e *Engine) Predecessors(taskID string) []string {
	return e.graph.Predecessors(taskID)
}

// Successors returns the ids directly depending on the given task.
func (e *Engine) Successors(taskID string) []string {
	return e.graph.Successors(taskID)
}

// HasPath reports reachability from source to target along
// predecessor -> dependent edges.
func (e *Engine) HasPath(source, target string) bool {
	return e.graph.HasPath(source, target)
}

// WouldCreateCycle reports whether adding "fromID depends on toID" to the
// current snapshot would close a cycle, without mutating the cached graph.
func (e *Engine) WouldCreateCycle(fromID, toID string) bool {
	if fromID == toID {
		return true
	}
	g := e.graph.Clone()
	g.AddEdge(toID, fromID)
	return len(g.DetectCycles()) > 0
}

// Resolution is the lenient resolver output. Cycles are reported as data for
// the caller to act on instead of raised as an error.
type Resolution struct {
	OrderedTasks   []*domain.Task
	CriticalPath   []string
	Cycles         [][]string
	EarliestStarts map[string]time.Time
}

// Resolve runs the full pipeline: cycle detection, topological sort,
// earliest-start calculation, critical-path extraction. On a cyclic graph
// the ordered list falls back to input order and date results are
// best-effort, but the call never hangs or panics.
func (e *Engine) Resolve(now time.Time) *Resolution {
	cycles := e.graph.DetectCycles()
	ordered := SortTasks(e.list)
	starts := e.earliestStarts(ordered, now)

	var critical []string
	if len(cycles) == 0 {
		critical = e.criticalPath(ordered, starts)
	}

	return &Resolution{
		OrderedTasks:   ordered,
		CriticalPath:   critical,
		Cycles:         cycles,
		EarliestStarts: starts,
	}
}

// Validate is the strict entry point. It raises a structured error for
// dangling references, invalid dependency types, self-dependencies, and
// cycles, in that order: cycle detection only runs on a structurally sound
// graph, and missing references are never silently dropped.
func (e *Engine) Validate() error {
	var missing []string
	seenMissing := make(map[string]bool)
	for _, t := range e.list {
		for _, dep := range t.Dependencies {
			if _, ok := e.tasks[dep.TaskID]; !ok && !seenMissing[dep.TaskID] {
				seenMissing[dep.TaskID] = true
				missing = append(missing, dep.TaskID)
			}
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &ValidationError{Kind: ErrKindMissing, InvolvedIDs: missing}
	}

	var invalid []string
	for _, t := range e.list {
		for _, dep := range t.Dependencies {
			if !domain.ValidDependencyTypes[string(dep.Type)] {
				invalid = append(invalid, t.ID)
				break
			}
		}
	}
	if len(invalid) > 0 {
		return &ValidationError{Kind: ErrKindInvalid, InvolvedIDs: invalid}
	}

	// Self-dependencies are circular dependencies of length one.
	var selfCycles [][]string
	for _, t := range e.list {
		for _, dep := range t.Dependencies {
			if dep.TaskID == t.ID {
				selfCycles = append(selfCycles, []string{t.ID, t.ID})
				break
			}
		}
	}
	if len(selfCycles) > 0 {
		return &ValidationError{
			Kind:        ErrKindCircular,
			InvolvedIDs: cycleIDs(selfCycles),
			Cycles:      selfCycles,
		}
	}

	if cycles := e.graph.DetectCycles(); len(cycles) > 0 {
		return &ValidationError{
			Kind:        ErrKindCircular,
			InvolvedIDs: cycleIDs(cycles),
			Cycles:      cycles,
		}
	}
	return nil
}

// CanStart evaluates whether all of a task's dependencies are satisfied as
// of the given instant. Finish-to-start requires the predecessor fully
// complete or past its end date; start-to-start requires it merely started.
// Finish-to-finish and start-to-finish constrain finish times, not start
// permission, and are treated as always satisfied here.
func (e *Engine) CanStart(taskID string, now time.Time) bool {
	t, ok := e.tasks[taskID]
	if !ok {
		return false
	}
	for _, dep := range t.Dependencies {
		pred, ok := e.tasks[dep.TaskID]
		if !ok {
			// Unknown predecessor: refuse rather than guess.
			return false
		}
		switch dep.Type {
		case domain.FinishToStart:
			if pred.Progress >= 100 {
				continue
			}
			if pred.EndDate != nil && pred.EndDate.Before(now) {
				continue
			}
			return false
		case domain.StartToStart:
			if pred.Progress > 0 {
				continue
			}
			return false
		}
	}
	return true
}

// earliestStarts walks tasks in the given order and computes each task's
// earliest start: the latest of its own base start (StartDate, else now) and
// every dependency-derived candidate. A task cannot start before any
// constraint allows.
func (e *Engine) earliestStarts(order []*domain.Task, now time.Time) map[string]time.Time {
	starts := make(map[string]time.Time, len(order))
	for _, t := range order {
		start := now
		if t.StartDate != nil {
			start = *t.StartDate
		}

		dur := t.DurationDays(e.workingHours)
		for _, dep := range t.Dependencies {
			pred, ok := e.tasks[dep.TaskID]
			if !ok {
				continue
			}
			predStart, ok := starts[pred.ID]
			if !ok {
				// Predecessor not yet scheduled: only possible on a cyclic
				// graph, where results are best-effort.
				continue
			}
			predDur := pred.DurationDays(e.workingHours)

			var candidate time.Time
			switch dep.Type {
			case domain.StartToStart:
				candidate = domain.AddDays(predStart, dep.LagDays)
			case domain.FinishToFinish:
				candidate = domain.AddDays(predStart, predDur+dep.LagDays-dur)
			case domain.StartToFinish:
				candidate = domain.AddDays(predStart, dep.LagDays-dur)
			default: // finish-to-start
				candidate = domain.AddDays(predStart, predDur+dep.LagDays)
			}
			if candidate.After(start) {
				start = candidate
			}
		}
		starts[t.ID] = start
	}
	return starts
}

// criticalPath runs the zero-slack backward pass against earliest starts:
// a task is critical iff its latest start equals its earliest start.
func (e *Engine) criticalPath(order []*domain.Task, starts map[string]time.Time) []string {
	if len(order) == 0 {
		return nil
	}

	// Project end is the maximum earliest finish.
	var projectEnd time.Time
	for _, t := range order {
		finish := domain.AddDays(starts[t.ID], t.DurationDays(e.workingHours))
		if finish.After(projectEnd) {
			projectEnd = finish
		}
	}

	latestStarts := make(map[string]time.Time, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		t := order[i]
		latestFinish := projectEnd
		for _, succID := range e.graph.Adj[t.ID] {
			if ls, ok := latestStarts[succID]; ok && ls.Before(latestFinish) {
				latestFinish = ls
			}
		}
		latestStarts[t.ID] = domain.AddDays(latestFinish, -t.DurationDays(e.workingHours))
	}

	var path []string
	for _, t := range order {
		slack := latestStarts[t.ID].Sub(starts[t.ID])
		if slack < 0 {
			slack = -slack
		}
		// Date arithmetic runs through time.Duration, so allow sub-second noise.
		if slack < time.Second {
			path = append(path, t.ID)
		}
	}
	return path
}

func cycleIDs(cycles [][]string) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, c := range cycles {
		for _, id := range c {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)
	return ids
}

// Resolve is the stateless convenience form: builds a throwaway engine from
// the snapshot and resolves it.
func Resolve(tasks []*domain.Task, now time.Time, workingHoursPerDay float64) *Resolution {
	e := NewEngine(workingHoursPerDay)
	e.Rebuild(tasks)
	return e.Resolve(now)
}

// Validate is the stateless convenience form of Engine.Validate.
func Validate(tasks []*domain.Task) error {
	e := NewEngine(0)
	e.Rebuild(tasks)
	return e.Validate()
}

// CanStart is the stateless convenience form of Engine.CanStart.
func CanStart(tasks []*domain.Task, taskID string, now time.Time) bool {
	e := NewEngine(0)
	e.Rebuild(tasks)
	return e.CanStart(taskID, now)
}
