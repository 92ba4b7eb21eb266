package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"DATABASE_DSN": "postgres://localhost/auth?sslmode=disable",
	})
	require.NoError(t, err)

	assert.Equal(t, "5001", cfg.AppPort)
	assert.Equal(t, BackendPostgres, cfg.StorageBackend)
	assert.Equal(t, BackendRedis, cfg.SessionBackend)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "http://localhost:5173", cfg.TrustedOrigin)
	assert.Equal(t, 10, cfg.SaltRounds)
	assert.Equal(t, "http://localhost:5001/auth/google/redirect", cfg.GoogleRedirectURL)
	assert.Equal(t, "http://localhost:5001/auth/discord/redirect", cfg.DiscordRedirectURL)
	assert.Equal(t, 10*time.Second, cfg.ProviderTimeout)
	assert.False(t, cfg.GoogleEnabled())
	assert.False(t, cfg.DiscordEnabled())
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"STORAGE_BACKEND":         "memory",
		"SESSION_BACKEND":         "memory",
		"SESSION_TTL":             "1h",
		"COOKIE_SECURE":           "false",
		"SALT_ROUNDS":             "12",
		"GOOGLE_CLIENT_ID":        "gid",
		"GOOGLE_CLIENT_SECRET":    "gsecret",
		"GOOGLE_FILLER_PASSWORD":  "google",
		"DISCORD_CLIENT_ID":       "did",
		"DISCORD_SECRET":          "dsecret",
		"DISCORD_FILLER_PASSWORD": "discord",
	})
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.StorageBackend)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, 12, cfg.SaltRounds)
	assert.True(t, cfg.GoogleEnabled())
	assert.True(t, cfg.DiscordEnabled())
	assert.Equal(t, "dsecret", cfg.DiscordClientSecret)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		cfg, err := LoadFrom(map[string]string{"STORAGE_BACKEND": "memory", "SESSION_BACKEND": "memory"})
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"postgres without dsn", func(c *Config) { c.StorageBackend = BackendPostgres }, "DATABASE_DSN"},
		{"unknown storage", func(c *Config) { c.StorageBackend = "mysql" }, "STORAGE_BACKEND"},
		{"unknown session backend", func(c *Config) { c.SessionBackend = "memcached" }, "SESSION_BACKEND"},
		{"zero ttl", func(c *Config) { c.SessionTTL = 0 }, "SESSION_TTL"},
		{"cost too low", func(c *Config) { c.SaltRounds = 2 }, "SALT_ROUNDS"},
		{"cost too high", func(c *Config) { c.SaltRounds = 40 }, "SALT_ROUNDS"},
		{"empty origin", func(c *Config) { c.TrustedOrigin = "" }, "TRUSTED_ORIGIN"},
		{"google without filler", func(c *Config) {
			c.GoogleClientID, c.GoogleClientSecret = "id", "secret"
		}, "GOOGLE_FILLER_PASSWORD"},
		{"discord without filler", func(c *Config) {
			c.DiscordClientID, c.DiscordClientSecret = "id", "secret"
		}, "DISCORD_FILLER_PASSWORD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFrom_InvalidDuration(t *testing.T) {
	_, err := LoadFrom(map[string]string{"SESSION_TTL": "forever"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}
