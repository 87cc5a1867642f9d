package filter

import (
	"fmt"
	"time"

	"crm/internal/models"
	"crm/internal/record"
)

// TaskTab selects one of the task list views.
type TaskTab string

const (
	TabAll       TaskTab = "all"
	TabToday     TaskTab = "today"
	TabUpcoming  TaskTab = "upcoming"
	TabOverdue   TaskTab = "overdue"
	TabCompleted TaskTab = "completed"
)

// DateLayout is the format of due dates on deals and tasks.
const DateLayout = "2006-01-02"

// ParseTab maps a query value onto a tab; empty means all.
func ParseTab(raw string) (TaskTab, error) {
	switch tab := TaskTab(raw); tab {
	case "":
		return TabAll, nil
	case TabAll, TabToday, TabUpcoming, TabOverdue, TabCompleted:
		return tab, nil
	default:
		return "", fmt.Errorf("%w: unknown tab %q", record.ErrInvalidRecord, raw)
	}
}

// Tasks returns the tasks shown under tab. Due dates are compared as
// calendar days in now's location.
func Tasks(tasks []models.Task, tab TaskTab, now time.Time) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	today := startOfDay(now)
	for _, t := range tasks {
		if showOnTab(t, tab, today) {
			out = append(out, t)
		}
	}
	return out
}

// IsOverdue reports whether the task's due day lies before today.
func IsOverdue(t models.Task, now time.Time) bool {
	due, ok := dueDay(t.DueDate, now.Location())
	return ok && due.Before(startOfDay(now))
}

func showOnTab(t models.Task, tab TaskTab, today time.Time) bool {
	switch tab {
	case TabCompleted:
		return t.Status == models.TaskDone
	case TabToday, TabUpcoming, TabOverdue:
		due, ok := dueDay(t.DueDate, today.Location())
		if !ok {
			return false
		}
		switch tab {
		case TabToday:
			return due.Equal(today)
		case TabOverdue:
			return due.Before(today)
		default:
			return due.After(today)
		}
	default:
		return true
	}
}

func dueDay(raw string, loc *time.Location) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation(DateLayout, raw, loc)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
