package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyhub/auth-service/internal/auth"
	"github.com/studyhub/auth-service/internal/auth/credentials"
	"github.com/studyhub/auth-service/internal/logger"
)

// Signup registers a password account and logs it in.
func (h *Handler) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	u, err := h.passwords.Register(c.Request.Context(), req.Email, req.Password)
	h.metrics.ObserveAttempt("signup", auth.OutcomeOf(err))

	switch {
	case err == nil:
	case errors.Is(err, auth.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
		return
	case errors.Is(err, credentials.ErrLookupFailed):
		logger.Error("signup lookup failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	default:
		logger.Error("signup failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating user"})
		return
	}

	logger.Info("user signed up", map[string]any{"user_id": u.ID.String()})

	if err := h.establish(c, *u, "signup"); err != nil {
		logger.Error("session establishment failed", map[string]any{
			"user_id": u.ID.String(),
			"error":   err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error logging in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signup successful"})
}
