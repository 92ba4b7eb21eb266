package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/studyhub/auth-service/internal/logger"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger.Init("test", "dev", "json", &buf)
	t.Cleanup(func() { logger.Init("test", "dev", "json", nil) })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/auth/:provider/redirect", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/google/redirect?code=secret-code", nil))

	out := buf.String()
	assert.Contains(t, out, `"path":"/auth/google/redirect"`)
	assert.Contains(t, out, `"status":200`)
	assert.NotContains(t, out, "secret-code")
}
