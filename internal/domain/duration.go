package domain

import (
	"math"
	"time"
)

// DefaultWorkingHoursPerDay is the divisor used to convert estimated hours
// into working days when a task carries no explicit dates.
const DefaultWorkingHoursPerDay = 8.0

// DurationDays returns the task's duration in days.
//
// Explicit dates take priority: when both StartDate and EndDate are set the
// duration is their difference rounded up to whole days. Otherwise
// EstimatedHours is divided by workingHoursPerDay. A task with neither
// defaults to one day.
func (t *Task) DurationDays(workingHoursPerDay float64) float64 {
	if t.StartDate != nil && t.EndDate != nil {
		days := math.Ceil(t.EndDate.Sub(*t.StartDate).Hours() / 24)
		if days < 0 {
			return 0
		}
		return days
	}
	if t.EstimatedHours > 0 {
		if workingHoursPerDay <= 0 {
			workingHoursPerDay = DefaultWorkingHoursPerDay
		}
		return t.EstimatedHours / workingHoursPerDay
	}
	return 1
}

// AddDays returns t shifted by the given (possibly fractional) number of days.
func AddDays(t time.Time, days float64) time.Time {
	return t.Add(time.Duration(days * 24 * float64(time.Hour)))
}

// DaysBetween returns the signed number of days from a to b.
func DaysBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours() / 24
}
