package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/studyhub/auth-service/internal/auth/credentials"
	"github.com/studyhub/auth-service/internal/auth/handler"
	"github.com/studyhub/auth-service/internal/auth/provider"
	"github.com/studyhub/auth-service/internal/auth/provider/apple"
	"github.com/studyhub/auth-service/internal/auth/provider/discord"
	"github.com/studyhub/auth-service/internal/auth/provider/google"
	"github.com/studyhub/auth-service/internal/auth/resolver"
	"github.com/studyhub/auth-service/internal/config"
	"github.com/studyhub/auth-service/internal/logger"
	"github.com/studyhub/auth-service/internal/metrics"
	"github.com/studyhub/auth-service/internal/middleware"
	"github.com/studyhub/auth-service/internal/session"
)

const readyTimeout = 2 * time.Second

func setupProviders(ctx context.Context, cfg config.Config) (*provider.Registry, map[string]string, error) {
	client := &http.Client{Timeout: cfg.ProviderTimeout}
	var list []provider.OAuthProvider
	fillers := map[string]string{}

	if cfg.GoogleEnabled() {
		p, err := google.New(ctx, google.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			HTTPClient:   client,
		})
		if err != nil {
			return nil, nil, err
		}
		list = append(list, p)
		fillers[p.Name()] = cfg.GoogleFillerPassword
	}

	if cfg.DiscordEnabled() {
		p, err := discord.New(discord.Config{
			ClientID:     cfg.DiscordClientID,
			ClientSecret: cfg.DiscordClientSecret,
			RedirectURL:  cfg.DiscordRedirectURL,
			HTTPClient:   client,
		})
		if err != nil {
			return nil, nil, err
		}
		list = append(list, p)
		fillers[p.Name()] = cfg.DiscordFillerPassword
	}

	registry := provider.NewRegistry(list...)
	registry.Reserve(apple.New())
	logger.Info("oauth providers registered", map[string]any{"providers": registry.Names()})
	return registry, fillers, nil
}

func setupHTTP(ctx context.Context, cfg config.Config, infra *Infra, m *metrics.Metrics) (*gin.Engine, error) {
	// ----------------------------
	// Dependencies
	// ----------------------------

	registry, fillers, err := setupProviders(ctx, cfg)
	if err != nil {
		return nil, err
	}

	passwords := credentials.NewService(infra.Users, credentials.NewBcryptHasher(cfg.SaltRounds))
	identityResolver := resolver.NewStoreResolver(infra.Users, fillers)
	sessions := session.NewManager(infra.Sessions, cfg.SessionTTL)
	cookies := session.CookieOptions{Secure: cfg.CookieSecure, SameSite: http.SameSiteLaxMode}

	authHandler := handler.NewHandler(
		passwords,
		registry,
		identityResolver,
		sessions,
		m,
		handler.Options{TrustedOrigin: cfg.TrustedOrigin, Cookies: cookies},
	)

	authMiddleware := middleware.NewAuthMiddleware(sessions, cookies)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.TrustedOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()

		checks := gin.H{"users": "ok", "sessions": "ok"}
		status := http.StatusOK
		if err := infra.Users.Ping(ctx); err != nil {
			checks["users"] = "unavailable"
			status = http.StatusServiceUnavailable
		}
		if err := sessions.Ping(ctx); err != nil {
			checks["sessions"] = "unavailable"
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, checks)
	})

	router.GET("/metrics", gin.WrapH(m.Handler()))

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	api := router.Group("/api")
	api.Use(middleware.GinRequireAuth(authMiddleware))
	api.GET("/me", authHandler.Me)

	return router, nil
}
