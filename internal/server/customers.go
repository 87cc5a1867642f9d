package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"crm/internal/filter"
	"crm/internal/models"
	"crm/internal/record"
)

type customerRequest struct {
	Name         string `json:"name"`
	Company      string `json:"company"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Status       string `json:"status"`
	Subscription string `json:"subscription"`
	LastContact  string `json:"lastContact"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// handleListCustomers returns the registry narrowed by q, status and subscription.
func (s *Server) handleListCustomers(c *gin.Context) {
	statuses, err := filter.ParseStatuses(c.Query("status"))
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	subscriptions, err := filter.ParseSubscriptions(c.Query("subscription"))
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	customers := s.ws.Customers(filter.CustomerSpec{
		Query:         c.Query("q"),
		Statuses:      statuses,
		Subscriptions: subscriptions,
	})
	respondSuccess(c, http.StatusOK, gin.H{"customers": customers})
}

func (s *Server) handleGetCustomer(c *gin.Context) {
	customer, ok := s.ws.Customer(c.Param("id"))
	if !ok {
		s.respondError(c, http.StatusNotFound, fmt.Errorf("%w: customer %s", record.ErrUnknownIdentity, c.Param("id")))
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"customer": customer})
}

// handleCreateCustomer adds a customer to the registry.
func (s *Server) handleCreateCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	customer, persisted, err := s.ws.AddCustomer(c.Request.Context(), models.Customer{
		Name:         req.Name,
		Company:      req.Company,
		Email:        req.Email,
		Phone:        req.Phone,
		Status:       models.CustomerStatus(req.Status),
		Subscription: models.Subscription(req.Subscription),
		LastContact:  req.LastContact,
	})
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"customer": customer, "persisted": persisted})
}

// handleSetCustomerStatus toggles a customer between active, inactive and lead.
func (s *Server) handleSetCustomerStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	customer, persisted, err := s.ws.SetCustomerStatus(c.Request.Context(), c.Param("id"), models.CustomerStatus(req.Status))
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"customer": customer, "persisted": persisted})
}

// handleDeleteCustomer removes a customer.
func (s *Server) handleDeleteCustomer(c *gin.Context) {
	persisted, err := s.ws.DeleteCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted", "persisted": persisted})
}
