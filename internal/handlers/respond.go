package handlers

import (
	"net/http"

	"github.com/camp-aid/campaid-backend/internal/apperrors"
	"github.com/camp-aid/campaid-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// respondError maps the workflow error taxonomy to transport statuses.
// Conflict and validation outcomes are normal negative results safe to show
// to the end user; gateway and store failures are retryable.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		status = http.StatusBadRequest
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindConflict:
		status = http.StatusConflict
	case apperrors.KindForbidden:
		status = http.StatusForbidden
	case apperrors.KindGateway:
		status = http.StatusBadGateway
	case apperrors.KindStoreUnavailable:
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// actorFrom builds the workflow Actor from the claims the auth middleware
// stored on the request context
func actorFrom(c *gin.Context) services.Actor {
	return services.Actor{
		Email: c.GetString("userEmail"),
		Role:  c.GetString("userRole"),
	}
}
