package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyhub/auth-service/internal/auth"
	"github.com/studyhub/auth-service/internal/auth/provider"
	"github.com/studyhub/auth-service/internal/auth/resolver"
	"github.com/studyhub/auth-service/internal/logger"
	"github.com/studyhub/auth-service/internal/metrics"
	"github.com/studyhub/auth-service/internal/session"
	"github.com/studyhub/auth-service/internal/users"
)

// PasswordAuthenticator is the email + password side of sign-in.
type PasswordAuthenticator interface {
	Authenticate(ctx context.Context, email, password string) (*users.User, error)
	Register(ctx context.Context, email, password string) (*users.User, error)
}

type Options struct {
	// TrustedOrigin is the only origin the relay page posts to.
	TrustedOrigin string
	Cookies       session.CookieOptions
}

type Handler struct {
	passwords     PasswordAuthenticator
	providers     *provider.Registry
	resolver      resolver.Resolver
	sessions      *session.Manager
	metrics       *metrics.Metrics
	trustedOrigin string
	cookies       session.CookieOptions
}

func NewHandler(
	passwords PasswordAuthenticator,
	registry *provider.Registry,
	resolver resolver.Resolver,
	sessions *session.Manager,
	m *metrics.Metrics,
	opts Options,
) *Handler {
	return &Handler{
		passwords:     passwords,
		providers:     registry,
		resolver:      resolver,
		sessions:      sessions,
		metrics:       m,
		trustedOrigin: opts.TrustedOrigin,
		cookies:       opts.Cookies,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/login", h.Login)
	r.POST("/signup", h.Signup)
	r.GET("/auth/:provider", h.startFederated)
	r.GET("/auth/:provider/redirect", h.federatedCallback)
}

// establish creates the session and sets its cookie.
func (h *Handler) establish(c *gin.Context, u users.User, method string) error {
	token, s, err := h.sessions.Establish(c.Request.Context(), u)
	if err != nil {
		return err
	}
	session.SetCookie(c.Writer, token, s.ExpiresAt, h.cookies)
	h.metrics.ObserveSession(method)
	return nil
}

func (h *Handler) startFederated(c *gin.Context) {
	p, err := h.providers.Get(c.Param("provider"))
	if errors.Is(err, provider.ErrNotEnabled) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Provider not enabled"})
		return
	}
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Unknown provider"})
		return
	}

	state, err := generateState(c, h.cookies.Secure)
	if err != nil {
		logger.Error("oauth state generation failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	_, codeChallenge, err := generatePKCE(c, h.cookies.Secure)
	if err != nil {
		logger.Error("pkce generation failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.Redirect(http.StatusFound, p.AuthCodeURL(state, codeChallenge))
}

// federatedCallback finishes the provider round trip. Whatever happens,
// the popup gets a relay page, never an error document.
func (h *Handler) federatedCallback(c *gin.Context) {
	providerName := c.Param("provider")

	// read before clearing; the handshake cookies are single use
	stateOK := validateState(c)
	codeVerifier := getPKCEVerifier(c)
	clearHandshakeCookie(c, stateCookieName, h.cookies.Secure)
	clearHandshakeCookie(c, pkceCookieName, h.cookies.Secure)

	p, err := h.providers.Get(providerName)
	if err != nil {
		method := "unknown"
		if errors.Is(err, provider.ErrNotEnabled) {
			method = providerName
		}
		h.federatedFailure(c, method, "provider unavailable", err)
		return
	}

	if !stateOK {
		h.federatedFailure(c, providerName, "invalid state", nil)
		return
	}

	// user cancelled or the provider refused
	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("oauth callback returned error", map[string]any{
			"provider": providerName,
			"error":    errParam,
			"desc":     c.Query("error_description"),
		})
		h.federatedFailure(c, providerName, "provider error", nil)
		return
	}

	code := c.Query("code")
	if code == "" {
		h.federatedFailure(c, providerName, "missing code", nil)
		return
	}
	if codeVerifier == "" {
		h.federatedFailure(c, providerName, "missing pkce verifier", nil)
		return
	}

	identity, err := p.ExchangeCode(c.Request.Context(), code, codeVerifier)
	if err != nil {
		h.federatedFailure(c, providerName, "code exchange failed", err)
		return
	}

	u, err := h.resolver.Resolve(c.Request.Context(), identity)
	if err != nil {
		h.federatedFailure(c, providerName, "identity resolution failed", err)
		return
	}

	if err := h.establish(c, *u, providerName); err != nil {
		h.federatedFailure(c, providerName, "session establishment failed", err)
		return
	}

	h.metrics.ObserveAttempt(providerName, auth.Authenticated)
	logger.Info("federated login succeeded", map[string]any{
		"provider": providerName,
		"user_id":  u.ID.String(),
	})

	h.renderRelay(c, u)
}

func (h *Handler) federatedFailure(c *gin.Context, method, reason string, err error) {
	outcome := auth.Rejected
	fields := map[string]any{
		"provider": method,
		"reason":   reason,
	}
	if err != nil {
		fields["error"] = err.Error()
		unavailable := errors.Is(err, provider.ErrUnknownProvider) || errors.Is(err, provider.ErrNotEnabled)
		if !unavailable {
			outcome = auth.OutcomeOf(err)
		}
	}

	h.metrics.ObserveAttempt(method, outcome)
	logger.Warn("federated login failed", fields)
	h.renderRelay(c, nil)
}
