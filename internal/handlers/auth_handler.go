package handlers

import (
	"net/http"

	"github.com/camp-aid/campaid-backend/internal/models"
	"github.com/camp-aid/campaid-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthHandler handles authentication and user HTTP requests
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authService.Login(c, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AdminLogin handles POST /auth/admin/login
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authService.AdminLogin(c, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CheckAdmin handles GET /auth/check/:email, the UI render hint.
// Identity must match the requested email.
func (h *AuthHandler) CheckAdmin(c *gin.Context) {
	email := c.Param("email")
	if email != c.GetString("userEmail") {
		c.JSON(http.StatusForbidden, gin.H{"error": "email does not match the authenticated identity"})
		return
	}

	admin, err := h.authService.IsAdmin(c, email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"admin": admin})
}

// GetAllUsers handles GET /users (admin console)
func (h *AuthHandler) GetAllUsers(c *gin.Context) {
	actor := actorFrom(c)
	if !actor.CanAdminister() {
		c.JSON(http.StatusForbidden, gin.H{"error": "listing users requires the admin role"})
		return
	}

	users, err := h.authService.ListUsers(c)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// DeleteUser handles DELETE /users/:id
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	actor := actorFrom(c)
	if !actor.CanAdminister() {
		c.JSON(http.StatusForbidden, gin.H{"error": "deleting users requires the admin role"})
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.authService.RemoveUser(c, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
