package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyhub/auth-service/internal/middleware"
)

// Me returns the session user. It must run behind the session middleware.
func (h *Handler) Me(c *gin.Context) {
	u, ok := middleware.UserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, u)
}
