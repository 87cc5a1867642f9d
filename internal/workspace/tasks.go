package workspace

import (
	"context"
	"fmt"
	"strings"
	"time"

	"crm/internal/filter"
	"crm/internal/models"
	"crm/internal/record"
	"crm/internal/storage"
)

// Tasks returns the tasks shown on tab as of now.
func (w *Workspace) Tasks(tab filter.TaskTab) []models.Task {
	w.mu.RLock()
	items := w.tasks.Items()
	w.mu.RUnlock()
	return filter.Tasks(items, tab, w.now())
}

// AddTask mints an identity for t and appends it to the task list.
func (w *Workspace) AddTask(ctx context.Context, t models.Task) (models.Task, bool, error) {
	t.ID = w.newID()
	t.Title = strings.TrimSpace(t.Title)
	t.Description = strings.TrimSpace(t.Description)
	if t.Status == "" {
		t.Status = models.TaskTodo
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	if t.DueDate != "" {
		if _, err := parseDate(t.DueDate); err != nil {
			return models.Task{}, false, fmt.Errorf("%w: due date %q", record.ErrInvalidRecord, t.DueDate)
		}
	}
	if err := t.Validate(); err != nil {
		return models.Task{}, false, fmt.Errorf("%w: %v", record.ErrInvalidRecord, err)
	}

	w.mu.Lock()
	next, err := w.tasks.Add(t)
	if err != nil {
		w.mu.Unlock()
		return models.Task{}, false, err
	}
	w.tasks = next
	w.mu.Unlock()

	return t, w.persist(ctx, storage.SlotTasks), nil
}

// ToggleTask flips a task between done and todo.
func (w *Workspace) ToggleTask(ctx context.Context, id string) (models.Task, bool, error) {
	w.mu.Lock()
	t, ok := w.tasks.Get(id)
	if !ok {
		w.mu.Unlock()
		return models.Task{}, false, fmt.Errorf("%w: %s", record.ErrUnknownIdentity, id)
	}
	t = t.Toggled()
	next, err := w.tasks.Replace(t)
	if err != nil {
		w.mu.Unlock()
		return models.Task{}, false, err
	}
	w.tasks = next
	w.mu.Unlock()

	return t, w.persist(ctx, storage.SlotTasks), nil
}

// DeleteTask removes a task.
func (w *Workspace) DeleteTask(ctx context.Context, id string) (bool, error) {
	w.mu.Lock()
	next, err := w.tasks.Delete(id)
	if err != nil {
		w.mu.Unlock()
		return false, err
	}
	w.tasks = next
	w.mu.Unlock()

	return w.persist(ctx, storage.SlotTasks), nil
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse(filter.DateLayout, raw)
}
