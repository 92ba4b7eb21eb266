package handler

import (
	"crypto/sha256"
	"encoding/base64"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studyhub/auth-service/internal/utils"
)

const (
	pkceCookieName = "__oauth_pkce"
	pkceTTL        = 5 * time.Minute
)

// generatePKCE stores a fresh verifier in a cookie and returns its S256
// challenge.
func generatePKCE(c *gin.Context, secure bool) (verifier string, challenge string, err error) {
	verifier, err = utils.RandomToken(32)
	if err != nil {
		return "", "", err
	}

	hash := sha256.Sum256([]byte(verifier))
	challenge = base64.RawURLEncoding.EncodeToString(hash[:])

	setHandshakeCookie(c, pkceCookieName, verifier, pkceTTL, secure)
	return verifier, challenge, nil
}

func getPKCEVerifier(c *gin.Context) string {
	cookie, err := c.Request.Cookie(pkceCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
