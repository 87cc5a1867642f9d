package workspace

import (
	"crm/internal/filter"
	"crm/internal/models"
)

// Summary backs the dashboard cards.
type Summary struct {
	Customers         int                           `json:"customers"`
	CustomersByStatus map[models.CustomerStatus]int `json:"customers_by_status"`
	OpenDeals         int                           `json:"open_deals"`
	PipelineValue     int64                         `json:"pipeline_value"`
	WeightedForecast  int64                         `json:"weighted_forecast"`
	ClosedValue       int64                         `json:"closed_value"`
	OpenTasks         int                           `json:"open_tasks"`
	OverdueTasks      int                           `json:"overdue_tasks"`
	DirtySlots        []string                      `json:"dirty_slots"`
}

// Summary computes the dashboard figures from the current snapshots.
func (w *Workspace) Summary() Summary {
	w.mu.RLock()
	customers := w.customers.Items()
	b := w.board
	tasks := w.tasks.Items()
	w.mu.RUnlock()

	s := Summary{
		Customers:         len(customers),
		CustomersByStatus: map[models.CustomerStatus]int{},
		DirtySlots:        w.Dirty(),
	}
	for _, c := range customers {
		s.CustomersByStatus[c.Status]++
	}

	for _, col := range b.Columns() {
		if col.Stage == models.StageClosed {
			s.ClosedValue += col.Total
			continue
		}
		s.OpenDeals += col.Count
		s.PipelineValue += col.Total
		s.WeightedForecast += col.Weighted
	}

	now := w.now()
	for _, t := range tasks {
		if t.Status == models.TaskDone {
			continue
		}
		s.OpenTasks++
		if filter.IsOverdue(t, now) {
			s.OverdueTasks++
		}
	}
	return s
}
