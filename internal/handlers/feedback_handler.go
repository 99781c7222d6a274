package handlers

import (
	"net/http"
	"strconv"

	"github.com/camp-aid/campaid-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedbackHandler handles feedback HTTP requests
type FeedbackHandler struct {
	workflow *services.Workflow
}

// NewFeedbackHandler creates a new FeedbackHandler
func NewFeedbackHandler(workflow *services.Workflow) *FeedbackHandler {
	return &FeedbackHandler{workflow: workflow}
}

// Submit handles POST /feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req struct {
		CampID  string `json:"campId" binding:"required"`
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment" binding:"required"`
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

	feedback, err := h.workflow.SubmitFeedback(c, actorFrom(c), campID, req.Rating, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, feedback)
}

// GetAll handles GET /feedback (public)
func (h *FeedbackHandler) GetAll(c *gin.Context) {
	feedback, err := h.workflow.AllFeedback(c)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, feedback)
}

// TopCamps handles GET /feedback/top (public)
func (h *FeedbackHandler) TopCamps(c *gin.Context) {
	n, _ := strconv.Atoi(c.DefaultQuery("n", strconv.Itoa(services.DefaultTopRanked)))

	ranked, err := h.workflow.TopCamps(c, n)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ranked)
}
