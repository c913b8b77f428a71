package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationDays_ExplicitDates(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)
	task := &Task{StartDate: &start, EndDate: &end, EstimatedHours: 80}

	// Dates win over the estimate.
	assert.Equal(t, 3.0, task.DurationDays(8))
}

func TestDurationDays_PartialDaysRoundUp(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Hour)
	task := &Task{StartDate: &start, EndDate: &end}

	assert.Equal(t, 2.0, task.DurationDays(8))
}

func TestDurationDays_EndBeforeStart(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)
	task := &Task{StartDate: &start, EndDate: &end}

	assert.Equal(t, 0.0, task.DurationDays(8))
}

func TestDurationDays_FromEstimate(t *testing.T) {
	task := &Task{EstimatedHours: 20}

	assert.Equal(t, 2.5, task.DurationDays(8))
	assert.Equal(t, 5.0, task.DurationDays(4))

	// Invalid divisor falls back to the default working day.
	assert.Equal(t, 2.5, task.DurationDays(0))
}

func TestDurationDays_DefaultsToOneDay(t *testing.T) {
	task := &Task{}

	assert.Equal(t, 1.0, task.DurationDays(8))
}

func TestAddDays(t *testing.T) {
	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, base.AddDate(0, 0, 2), AddDays(base, 2))
	assert.Equal(t, base.Add(12*time.Hour), AddDays(base, 0.5))
	assert.Equal(t, base.AddDate(0, 0, -1), AddDays(base, -1))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	b := a.AddDate(0, 0, 4)

	assert.Equal(t, 4.0, DaysBetween(a, b))
	assert.Equal(t, -4.0, DaysBetween(b, a))
}

func TestParseTaskStatus(t *testing.T) {
	for _, valid := range []string{"todo", "in_progress", "done"} {
		status, err := ParseTaskStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, TaskStatus(valid), status)
	}

	_, err := ParseTaskStatus("blocked")
	assert.Error(t, err)
}

func TestParseDependencyType(t *testing.T) {
	for _, valid := range []string{"finish-to-start", "start-to-start", "finish-to-finish", "start-to-finish"} {
		depType, err := ParseDependencyType(valid)
		assert.NoError(t, err)
		assert.Equal(t, DependencyType(valid), depType)
	}

	_, err := ParseDependencyType("blocks")
	assert.Error(t, err)
}
