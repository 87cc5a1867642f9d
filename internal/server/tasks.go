package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crm/internal/filter"
	"crm/internal/models"
)

type taskRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	DueDate     *string          `json:"dueDate"`
	Priority    *string          `json:"priority"`
	Status      *string          `json:"status"`
	Assignee    *string          `json:"assignee"`
	RelatedTo   *models.Relation `json:"relatedTo"`
}

// handleListTasks returns the tasks on the requested tab.
func (s *Server) handleListTasks(c *gin.Context) {
	tab, err := filter.ParseTab(c.Query("tab"))
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"tab": tab, "tasks": s.ws.Tasks(tab)})
}

// handleCreateTask appends a task to the list.
func (s *Server) handleCreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	task, persisted, err := s.ws.AddTask(c.Request.Context(), models.Task{
		Title:       getString(req.Title),
		Description: getString(req.Description),
		DueDate:     getString(req.DueDate),
		Priority:    models.Priority(getString(req.Priority)),
		Status:      models.TaskStatus(getString(req.Status)),
		Assignee:    getString(req.Assignee),
		RelatedTo:   req.RelatedTo,
	})
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"task": task, "persisted": persisted})
}

// handleToggleTask flips the done flag of a task.
func (s *Server) handleToggleTask(c *gin.Context) {
	task, persisted, err := s.ws.ToggleTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"task": task, "persisted": persisted})
}

// handleDeleteTask removes a task completely.
func (s *Server) handleDeleteTask(c *gin.Context) {
	persisted, err := s.ws.DeleteTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted", "persisted": persisted})
}

func getString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
