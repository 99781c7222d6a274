package handlers

import (
	"net/http"

	"github.com/camp-aid/campaid-backend/internal/models"
	"github.com/camp-aid/campaid-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegistrationHandler handles registration workflow HTTP requests
type RegistrationHandler struct {
	workflow *services.Workflow
}

// NewRegistrationHandler creates a new RegistrationHandler
func NewRegistrationHandler(workflow *services.Workflow) *RegistrationHandler {
	return &RegistrationHandler{workflow: workflow}
}

// Register handles POST /registrations
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req struct {
		CampID  string                    `json:"campId" binding:"required"`
		Details models.ParticipantDetails `json:"details" binding:"required"`
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

	reg, err := h.workflow.RegisterForCamp(c, actorFrom(c), campID, req.Details)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reg)
}

// Cancel handles DELETE /registrations/:id
func (h *RegistrationHandler) Cancel(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.workflow.CancelRegistration(c, actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

// Confirm handles PATCH /registrations/:id/confirm (admin)
func (h *RegistrationHandler) Confirm(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.workflow.ConfirmRegistration(c, actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"confirmed": true})
}

// AdminRoll handles GET /registrations (admin)
func (h *RegistrationHandler) AdminRoll(c *gin.Context) {
	summaries, err := h.workflow.AdminRoll(c, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// MyRegistrations handles GET /registrations/me
func (h *RegistrationHandler) MyRegistrations(c *gin.Context) {
	regs, err := h.workflow.MyRegistrations(c, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, regs)
}

// Reconcile handles POST /admin/reconcile (admin)
func (h *RegistrationHandler) Reconcile(c *gin.Context) {
	corrected, err := h.workflow.Reconcile(c, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"corrected": corrected})
}
