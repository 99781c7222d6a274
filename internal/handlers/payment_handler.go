package handlers

import (
	"net/http"

	"github.com/camp-aid/campaid-backend/internal/models"
	"github.com/camp-aid/campaid-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentHandler handles payment workflow HTTP requests
type PaymentHandler struct {
	workflow *services.Workflow
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(workflow *services.Workflow) *PaymentHandler {
	return &PaymentHandler{workflow: workflow}
}

// CreateIntent handles POST /payments/intent
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req struct {
		CampID string `json:"campId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	campID, err := primitive.ObjectIDFromHex(req.CampID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid camp ID format"})
		return
	}

	intent, err := h.workflow.CreatePaymentIntent(c, actorFrom(c), campID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, intent)
}

// RecordPayment handles POST /registrations/:id/payment
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var payload models.PaymentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.workflow.RecordPayment(c, actorFrom(c), id, payload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// History handles GET /payments/history/:email
func (h *PaymentHandler) History(c *gin.Context) {
	records, err := h.workflow.PaymentHistory(c, actorFrom(c), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}
