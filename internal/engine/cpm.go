package engine

import (
	"sort"
	"time"

	"github.com/seanhalberthal/critpath/internal/domain"
)

// CriticalTolerance is the total-float threshold (in days) at or below which
// a task counts as critical. Date arithmetic rounds through time.Duration,
// so an exact-zero comparison would misclassify tasks.
const CriticalTolerance = 0.1

// ScheduleOptions configures the CPM scheduler.
type ScheduleOptions struct {
	// ProjectStart anchors tasks without an explicit StartDate. Defaults to
	// the time of computation.
	ProjectStart *time.Time

	// WorkingHoursPerDay converts estimated hours to days. Zero selects the
	// default.
	WorkingHoursPerDay float64
}

// TaskSchedule is the per-task result of the CPM forward/backward pass.
// Floats are in days.
type TaskSchedule struct {
	TaskID       string
	EarlyStart   time.Time
	EarlyFinish  time.Time
	LateStart    time.Time
	LateFinish   time.Time
	TotalFloat   float64
	FreeFloat    float64
	IsCritical   bool
	Predecessors []string
	Successors   []string
}

// CriticalPathResult summarizes the project's bottleneck chain.
type CriticalPathResult struct {
	// TaskIDs lists critical tasks ordered by early start.
	TaskIDs []string

	// Duration is the summed duration of critical tasks, in days.
	Duration float64

	// HasDelays is set when a critical task's recorded end date falls before
	// its computed early finish, signaling a task off pace along the chain.
	HasDelays bool

	// TotalSlack is the summed total float of all non-critical tasks.
	TotalSlack float64
}

// CalculateSchedule performs full CPM scheduling: a forward pass for early
// dates, a backward pass for late dates, then float computation and the
// critical flag. The snapshot is validated first; a cyclic or dangling graph
// returns the structured validation error instead of undefined date math.
func (e *Engine) CalculateSchedule(opts ScheduleOptions) (map[string]*TaskSchedule, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	workingHours := opts.WorkingHoursPerDay
	if workingHours <= 0 {
		workingHours = e.workingHours
	}
	projectStart := time.Now()
	if opts.ProjectStart != nil {
		projectStart = *opts.ProjectStart
	}

	order, err := e.graph.TopoOrder()
	if err != nil {
		// Unreachable after Validate, kept as a guard.
		return nil, err
	}

	durations := make(map[string]float64, len(e.tasks))
	for id, t := range e.tasks {
		durations[id] = t.DurationDays(workingHours)
	}

	schedules := make(map[string]*TaskSchedule, len(e.tasks))

	// Forward pass: early start is the latest of the task's base start and
	// every predecessor constraint, expressed in absolute finish-time terms.
	for _, id := range order {
		t := e.tasks[id]
		dur := durations[id]

		es := projectStart
		if t.StartDate != nil {
			es = *t.StartDate
		}

		for _, dep := range t.Dependencies {
			pred := schedules[dep.TaskID]
			var candidate time.Time
			switch dep.Type {
			case domain.StartToStart:
				candidate = domain.AddDays(pred.EarlyStart, dep.LagDays)
			case domain.FinishToFinish:
				candidate = domain.AddDays(pred.EarlyFinish, dep.LagDays-dur)
			case domain.StartToFinish:
				candidate = domain.AddDays(pred.EarlyStart, dep.LagDays-dur)
			default: // finish-to-start
				candidate = domain.AddDays(pred.EarlyFinish, dep.LagDays)
			}
			if candidate.After(es) {
				es = candidate
			}
		}

		schedules[id] = &TaskSchedule{
			TaskID:       id,
			EarlyStart:   es,
			EarlyFinish:  domain.AddDays(es, dur),
			Predecessors: e.graph.Predecessors(id),
			Successors:   e.graph.Successors(id),
		}
	}

	var projectEnd time.Time
	for _, s := range schedules {
		if s.EarlyFinish.After(projectEnd) {
			projectEnd = s.EarlyFinish
		}
	}

	// Backward pass: late finish is the tightest successor constraint,
	// honoring the four relationship types symmetrically.
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		s := schedules[id]
		dur := durations[id]

		lf := projectEnd
		for _, succID := range e.graph.Adj[id] {
			succ := e.tasks[succID]
			succSched := schedules[succID]
			for _, dep := range succ.Dependencies {
				if dep.TaskID != id {
					continue
				}
				var bound time.Time
				switch dep.Type {
				case domain.StartToStart:
					bound = domain.AddDays(succSched.LateStart, dur-dep.LagDays)
				case domain.FinishToFinish:
					bound = domain.AddDays(succSched.LateFinish, -dep.LagDays)
				case domain.StartToFinish:
					bound = domain.AddDays(succSched.LateFinish, dur-dep.LagDays)
				default: // finish-to-start
					bound = domain.AddDays(succSched.LateStart, -dep.LagDays)
				}
				if bound.Before(lf) {
					lf = bound
				}
			}
		}

		s.LateFinish = lf
		s.LateStart = domain.AddDays(lf, -dur)
		s.TotalFloat = domain.DaysBetween(s.EarlyStart, s.LateStart)
		s.IsCritical = s.TotalFloat <= CriticalTolerance
	}

	// Free float: how far a task can slip before disturbing its earliest
	// successor. Leaves measure against the project end.
	for _, id := range order {
		s := schedules[id]
		var nextStart time.Time
		for i, succID := range e.graph.Adj[id] {
			ss := schedules[succID].EarlyStart
			if i == 0 || ss.Before(nextStart) {
				nextStart = ss
			}
		}
		if len(e.graph.Adj[id]) == 0 {
			nextStart = projectEnd
		}
		free := domain.DaysBetween(s.EarlyFinish, nextStart)
		if free < 0 {
			free = 0
		}
		s.FreeFloat = free
	}

	return schedules, nil
}

// FindCriticalPath computes the CPM schedule and extracts the critical chain.
func (e *Engine) FindCriticalPath(opts ScheduleOptions) (*CriticalPathResult, error) {
	schedules, err := e.CalculateSchedule(opts)
	if err != nil {
		return nil, err
	}

	workingHours := opts.WorkingHoursPerDay
	if workingHours <= 0 {
		workingHours = e.workingHours
	}

	result := &CriticalPathResult{}
	var critical []*TaskSchedule
	for _, s := range schedules {
		if s.IsCritical {
			critical = append(critical, s)
		} else {
			result.TotalSlack += s.TotalFloat
		}
	}

	sort.Slice(critical, func(i, j int) bool {
		if !critical[i].EarlyStart.Equal(critical[j].EarlyStart) {
			return critical[i].EarlyStart.Before(critical[j].EarlyStart)
		}
		return critical[i].TaskID < critical[j].TaskID
	})

	for _, s := range critical {
		t := e.tasks[s.TaskID]
		result.TaskIDs = append(result.TaskIDs, s.TaskID)
		result.Duration += t.DurationDays(workingHours)
		if t.EndDate != nil && t.EndDate.Before(s.EarlyFinish) {
			result.HasDelays = true
		}
	}
	return result, nil
}

// CalculateSchedule is the stateless convenience form of
// Engine.CalculateSchedule.
func CalculateSchedule(tasks []*domain.Task, opts ScheduleOptions) (map[string]*TaskSchedule, error) {
	e := NewEngine(opts.WorkingHoursPerDay)
	e.Rebuild(tasks)
	return e.CalculateSchedule(opts)
}

// FindCriticalPath is the stateless convenience form of
// Engine.FindCriticalPath.
func FindCriticalPath(tasks []*domain.Task, opts ScheduleOptions) (*CriticalPathResult, error) {
	e := NewEngine(opts.WorkingHoursPerDay)
	e.Rebuild(tasks)
	return e.FindCriticalPath(opts)
}
