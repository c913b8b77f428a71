package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/seanhalberthal/critpath/internal/domain"
)

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatDate(t *time.Time) string {
	if t == nil {
		return Dim("–")
	}
	return t.Format("2006-01-02")
}

// FormatTaskList renders the task list as an aligned table.
func FormatTaskList(tasks []*domain.Task) string {
	headers := []string{"ID", "TITLE", "STATUS", "START", "END", "HOURS", "PROG", "DEPS"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			Dim(shortID(t.ID)),
			t.Title,
			StatusLabel(t.Status),
			formatDate(t.StartDate),
			formatDate(t.EndDate),
			fmt.Sprintf("%.1f", t.EstimatedHours),
			fmt.Sprintf("%.0f%%", t.Progress),
			fmt.Sprintf("%d", len(t.Dependencies)),
		})
	}
	return RenderTable(headers, rows)
}

// FormatTaskDetail renders a single task with its dependency edges.
func FormatTaskDetail(t *domain.Task, successors []string) string {
	var b strings.Builder

	b.WriteString(Header(t.Title) + "\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Bold("ID:"), t.ID))
	b.WriteString(fmt.Sprintf("%s %s\n", Bold("Status:"), StatusLabel(t.Status)))
	b.WriteString(fmt.Sprintf("%s %s  %s %s\n", Bold("Start:"), formatDate(t.StartDate), Bold("End:"), formatDate(t.EndDate)))
	b.WriteString(fmt.Sprintf("%s %.1fh  %s %.0f%%\n", Bold("Estimate:"), t.EstimatedHours, Bold("Progress:"), t.Progress))

	b.WriteString("\n" + FormatDependencies(t, successors))
	return b.String()
}

// FormatDependencies renders a task's predecessor and successor edges.
func FormatDependencies(t *domain.Task, successors []string) string {
	var b strings.Builder

	b.WriteString(Bold("Depends on:") + "\n")
	if len(t.Dependencies) == 0 {
		b.WriteString("  " + Dim("none") + "\n")
	}
	for _, dep := range t.Dependencies {
		line := fmt.Sprintf("  %s (%s", shortID(dep.TaskID), dep.Type)
		if dep.LagDays != 0 {
			line += fmt.Sprintf(", lag %+.1fd", dep.LagDays)
		}
		b.WriteString(line + ")\n")
	}

	b.WriteString(Bold("Blocks:") + "\n")
	if len(successors) == 0 {
		b.WriteString("  " + Dim("none") + "\n")
	}
	for _, id := range successors {
		b.WriteString("  " + shortID(id) + "\n")
	}

	return b.String()
}
