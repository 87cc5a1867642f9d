package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"crm/internal/record"
	"crm/internal/workspace"
)

// Server provides the HTTP actions of the CRM dashboard.
type Server struct {
	engine    *gin.Engine
	ws        *workspace.Workspace
	logger    *slog.Logger
	staticDir string
}

// New constructs the HTTP server with routes and middleware configured.
func New(ws *workspace.Workspace, logger *slog.Logger, staticDir string) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/api/healthz"))

	srv := &Server{
		engine:    router,
		ws:        ws,
		logger:    logger,
		staticDir: staticDir,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires all API and static handlers together.
func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/healthz", s.handleHealth)
		api.GET("/dashboard", s.handleDashboard)

		customers := api.Group("/customers")
		{
			customers.GET("", s.handleListCustomers)
			customers.POST("", s.handleCreateCustomer)
			customers.GET(":id", s.handleGetCustomer)
			customers.PUT(":id/status", s.handleSetCustomerStatus)
			customers.DELETE(":id", s.handleDeleteCustomer)
		}

		pipeline := api.Group("/pipeline")
		{
			pipeline.GET("", s.handlePipeline)
			pipeline.PUT(":stage/reorder", s.handleReorder)
		}

		deals := api.Group("/deals")
		{
			deals.POST("", s.handleCreateDeal)
			deals.PUT(":id/move", s.handleMoveDeal)
			deals.DELETE(":id", s.handleDeleteDeal)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("", s.handleListTasks)
			tasks.POST("", s.handleCreateTask)
			tasks.PUT(":id/toggle", s.handleToggleTask)
			tasks.DELETE(":id", s.handleDeleteTask)
		}
	}

	s.mountStatic()
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "dirty_slots": s.ws.Dirty()})
}

func (s *Server) handleDashboard(c *gin.Context) {
	respondSuccess(c, http.StatusOK, gin.H{"summary": s.ws.Summary()})
}

// statusFor maps engine errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, record.ErrUnknownIdentity):
		return http.StatusNotFound
	case errors.Is(err, record.ErrDuplicateIdentity):
		return http.StatusConflict
	case errors.Is(err, record.ErrInvalidRecord), errors.Is(err, record.ErrIndexOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs the error and returns a JSON payload.
func (s *Server) respondError(c *gin.Context, status int, err error) {
	if err != nil {
		s.logger.Error("request failed", slog.String("path", c.FullPath()), slog.Int("status", status), slog.String("error", err.Error()))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondSuccess wraps a payload in a JSON envelope for consistency.
func respondSuccess(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}
