package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyhub/auth-service/internal/auth"
	"github.com/studyhub/auth-service/internal/logger"
)

// credentialsRequest accepts JSON or form-urlencoded bodies.
type credentialsRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	u, err := h.passwords.Authenticate(c.Request.Context(), req.Email, req.Password)
	outcome := auth.OutcomeOf(err)
	h.metrics.ObserveAttempt("password", outcome)

	switch outcome {
	case auth.Authenticated:
	case auth.Rejected:
		// unknown email and wrong password look the same to the client
		logger.Info("password login rejected", map[string]any{"reason": err.Error()})
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	default:
		logger.Error("password login failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred during login"})
		return
	}

	if err := h.establish(c, *u, "password"); err != nil {
		logger.Error("session establishment failed", map[string]any{
			"user_id": u.ID.String(),
			"error":   err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to log in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
}
