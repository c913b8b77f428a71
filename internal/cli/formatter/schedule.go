package formatter

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/seanhalberthal/critpath/internal/domain"
	"github.com/seanhalberthal/critpath/internal/engine"
)

// FormatResolution renders dependency-ordered tasks with their earliest
// start dates, plus any cycles that forced a fallback ordering.
func FormatResolution(res *engine.Resolution) string {
	var b strings.Builder

	critical := make(map[string]bool, len(res.CriticalPath))
	for _, id := range res.CriticalPath {
		critical[id] = true
	}

	headers := []string{"#", "ID", "TITLE", "STATUS", "EARLIEST START", "CRITICAL"}
	rows := make([][]string, 0, len(res.OrderedTasks))
	for i, t := range res.OrderedTasks {
		start := Dim("–")
		if es, ok := res.EarliestStarts[t.ID]; ok {
			start = es.Format("2006-01-02")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			Dim(shortID(t.ID)),
			t.Title,
			StatusLabel(t.Status),
			start,
			CriticalMarker(critical[t.ID]),
		})
	}
	b.WriteString(RenderTable(headers, rows))

	if len(res.Cycles) > 0 {
		b.WriteString("\n" + StyleRed.Render("Cycles detected; showing input order:") + "\n")
		for _, cycle := range res.Cycles {
			short := make([]string, len(cycle))
			for i, id := range cycle {
				short[i] = shortID(id)
			}
			b.WriteString("  " + strings.Join(short, " -> ") + "\n")
		}
	}

	return b.String()
}

// FormatValidation renders the outcome of a graph validation check.
func FormatValidation(err error) string {
	if err == nil {
		return StyleGreen.Render("✓ Dependency graph is valid")
	}

	var vErr *engine.ValidationError
	if !errors.As(err, &vErr) {
		return StyleRed.Render("✗ " + err.Error())
	}

	var b strings.Builder
	switch vErr.Kind {
	case engine.ErrKindCircular:
		b.WriteString(StyleRed.Render("✗ Circular dependencies detected") + "\n")
		for _, cycle := range vErr.Cycles {
			b.WriteString("  " + strings.Join(cycle, " -> ") + "\n")
		}
	case engine.ErrKindMissing:
		b.WriteString(StyleRed.Render("✗ References to missing tasks") + "\n")
		for _, id := range vErr.InvolvedIDs {
			b.WriteString("  " + id + "\n")
		}
	default:
		b.WriteString(StyleRed.Render("✗ Invalid dependencies") + "\n")
		for _, id := range vErr.InvolvedIDs {
			b.WriteString("  " + id + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatSchedule renders the full CPM table sorted by early start.
func FormatSchedule(schedules map[string]*engine.TaskSchedule) string {
	list := make([]*engine.TaskSchedule, 0, len(schedules))
	for _, s := range schedules {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].EarlyStart.Equal(list[j].EarlyStart) {
			return list[i].EarlyStart.Before(list[j].EarlyStart)
		}
		return list[i].TaskID < list[j].TaskID
	})

	headers := []string{"ID", "EARLY START", "EARLY FINISH", "LATE START", "LATE FINISH", "FLOAT", "FREE", "CRITICAL"}
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		floatCell := fmt.Sprintf("%.1f", s.TotalFloat)
		if s.IsCritical {
			floatCell = StyleRed.Render(floatCell)
		}
		rows = append(rows, []string{
			Dim(shortID(s.TaskID)),
			s.EarlyStart.Format("2006-01-02"),
			s.EarlyFinish.Format("2006-01-02"),
			s.LateStart.Format("2006-01-02"),
			s.LateFinish.Format("2006-01-02"),
			floatCell,
			fmt.Sprintf("%.1f", s.FreeFloat),
			CriticalMarker(s.IsCritical),
		})
	}
	return RenderTable(headers, rows)
}

// FormatCriticalPath renders the critical chain with a slack summary.
func FormatCriticalPath(result *engine.CriticalPathResult, tasks []*domain.Task) string {
	titles := make(map[string]string, len(tasks))
	for _, t := range tasks {
		titles[t.ID] = t.Title
	}

	var b strings.Builder
	b.WriteString(Header("Critical Path") + "\n")

	if len(result.TaskIDs) == 0 {
		b.WriteString(Dim("No critical tasks.") + "\n")
	}
	for i, id := range result.TaskIDs {
		title := titles[id]
		if title == "" {
			title = id
		}
		b.WriteString(fmt.Sprintf("%d. %s %s\n", i+1, StyleRed.Render(title), Dim("("+shortID(id)+")")))
	}

	b.WriteString(fmt.Sprintf("\n%s %.1f days\n", Bold("Duration:"), result.Duration))
	b.WriteString(fmt.Sprintf("%s %.1f days\n", Bold("Total slack (non-critical):"), result.TotalSlack))
	if result.HasDelays {
		b.WriteString(StyleYellow.Render("⚠ Some critical tasks are running behind their computed finish dates") + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
