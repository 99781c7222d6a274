package handlers

import (
	"net/http"

	"github.com/camp-aid/campaid-backend/internal/models"
	"github.com/camp-aid/campaid-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CampHandler handles camp listing HTTP requests
type CampHandler struct {
	campService services.CampService
}

// NewCampHandler creates a new CampHandler
func NewCampHandler(campService services.CampService) *CampHandler {
	return &CampHandler{campService: campService}
}

// GetAllCamps handles GET /camps (public)
func (h *CampHandler) GetAllCamps(c *gin.Context) {
	camps, err := h.campService.ListCamps(c)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, camps)
}

// GetCampByID handles GET /camps/:id (public)
func (h *CampHandler) GetCampByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	camp, err := h.campService.GetCamp(c, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, camp)
}

// CreateCamp handles POST /camps (admin)
func (h *CampHandler) CreateCamp(c *gin.Context) {
	actor := actorFrom(c)
	if !actor.CanAdminister() {
		c.JSON(http.StatusForbidden, gin.H{"error": "creating camps requires the admin role"})
		return
	}

	var camp models.Camp
	if err := c.ShouldBindJSON(&camp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	camp.CreatedBy = actor.Email

	if err := h.campService.CreateCamp(c, &camp); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, camp)
}

// UpdateCamp handles PATCH /camps/:id (admin)
func (h *CampHandler) UpdateCamp(c *gin.Context) {
	actor := actorFrom(c)
	if !actor.CanAdminister() {
		c.JSON(http.StatusForbidden, gin.H{"error": "updating camps requires the admin role"})
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var update models.CampUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.campService.UpdateCamp(c, id, &update); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// DeleteCamp handles DELETE /camps/:id (admin)
func (h *CampHandler) DeleteCamp(c *gin.Context) {
	actor := actorFrom(c)
	if !actor.CanAdminister() {
		c.JSON(http.StatusForbidden, gin.H{"error": "deleting camps requires the admin role"})
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.campService.DeleteCamp(c, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
