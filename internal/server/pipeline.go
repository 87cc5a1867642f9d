package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crm/internal/filter"
	"crm/internal/models"
)

type dealRequest struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company"`
	Value       int64  `json:"value"`
	Probability int    `json:"probability"`
	Contact     string `json:"contact"`
	DueDate     string `json:"dueDate"`
	Stage       string `json:"stage"`
}

type moveRequest struct {
	Stage string `json:"stage" binding:"required"`
	Index int    `json:"index"`
}

type reorderRequest struct {
	From *int `json:"from" binding:"required"`
	To   *int `json:"to" binding:"required"`
}

// handlePipeline returns the board columns, optionally narrowed by q and stage.
func (s *Server) handlePipeline(c *gin.Context) {
	stages, err := filter.ParseStages(c.Query("stage"))
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	columns := s.ws.Pipeline(filter.DealSpec{Query: c.Query("q"), Stages: stages})
	respondSuccess(c, http.StatusOK, gin.H{"columns": columns, "total": s.ws.Board().Total()})
}

// handleCreateDeal places a new deal at the end of its stage.
func (s *Server) handleCreateDeal(c *gin.Context) {
	var req dealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	deal, persisted, err := s.ws.AddDeal(c.Request.Context(), models.Deal{
		Title:       req.Title,
		Company:     req.Company,
		Value:       req.Value,
		Probability: req.Probability,
		Contact:     req.Contact,
		DueDate:     req.DueDate,
		Stage:       models.Stage(req.Stage),
	})
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"deal": deal, "persisted": persisted})
}

// handleMoveDeal drops a deal onto a stage column at the given index.
func (s *Server) handleMoveDeal(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	id := c.Param("id")
	persisted, err := s.ws.MoveDeal(c.Request.Context(), id, models.Stage(req.Stage), req.Index)
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	deal, _ := s.ws.Board().Deal(id)
	respondSuccess(c, http.StatusOK, gin.H{"deal": deal, "persisted": persisted})
}

// handleReorder moves a deal within one stage column.
func (s *Server) handleReorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	stage := models.Stage(c.Param("stage"))
	persisted, err := s.ws.ReorderDeals(c.Request.Context(), stage, *req.From, *req.To)
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"sequence": s.ws.Board().Sequence(stage), "persisted": persisted})
}

// handleDeleteDeal removes a deal from the board.
func (s *Server) handleDeleteDeal(c *gin.Context) {
	persisted, err := s.ws.DeleteDeal(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted", "persisted": persisted})
}
