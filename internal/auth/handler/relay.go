package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyhub/auth-service/internal/logger"
	"github.com/studyhub/auth-service/internal/users"
)

const (
	relaySuccess = "AUTH_SUCCESS"
	relayFailure = "AUTH_FAILURE"
)

//go:embed templates/relay.html
var templatesFS embed.FS

var relayTemplate = template.Must(template.ParseFS(templatesFS, "templates/relay.html"))

// relayMessage is what the popup posts to its opener.
type relayMessage struct {
	Type string      `json:"type"`
	User *users.User `json:"user,omitempty"`
}

type relayPage struct {
	Message relayMessage
	Origin  string
}

// renderRelay writes the popup page. The response is always 200 text/html;
// the opener learns the result from the message, not the status.
func (h *Handler) renderRelay(c *gin.Context, u *users.User) {
	msg := relayMessage{Type: relayFailure}
	if u != nil {
		msg = relayMessage{Type: relaySuccess, User: u}
	}

	var buf bytes.Buffer
	if err := relayTemplate.Execute(&buf, relayPage{Message: msg, Origin: h.trustedOrigin}); err != nil {
		logger.Error("relay render failed", map[string]any{"error": err.Error()})
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
