package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

type Config struct {
	AppPort   string `env:"APP_PORT" envDefault:"5001"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"postgres"`
	DatabaseDSN    string `env:"DATABASE_DSN"`

	SessionBackend string        `env:"SESSION_BACKEND" envDefault:"redis"`
	RedisAddr      string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword  string        `env:"REDIS_PASSWORD"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CookieSecure   bool          `env:"COOKIE_SECURE" envDefault:"true"`

	// TrustedOrigin is the single origin allowed to receive relay messages
	// and to call the JSON endpoints with credentials.
	TrustedOrigin string `env:"TRUSTED_ORIGIN" envDefault:"http://localhost:5173"`

	SaltRounds int `env:"SALT_ROUNDS" envDefault:"10"`

	GoogleClientID       string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret   string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL    string `env:"GOOGLE_REDIRECT_URL" envDefault:"http://localhost:5001/auth/google/redirect"`
	GoogleFillerPassword string `env:"GOOGLE_FILLER_PASSWORD"`

	DiscordClientID       string `env:"DISCORD_CLIENT_ID"`
	DiscordClientSecret   string `env:"DISCORD_SECRET"`
	DiscordRedirectURL    string `env:"DISCORD_REDIRECT_URL" envDefault:"http://localhost:5001/auth/discord/redirect"`
	DiscordFillerPassword string `env:"DISCORD_FILLER_PASSWORD"`

	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"10s"`
	StartupTimeout  time.Duration `env:"STARTUP_TIMEOUT" envDefault:"30s"`
}

// Load reads the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads configuration from the given variables only.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// GoogleEnabled reports whether Google sign-in has credentials configured.
func (c Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// DiscordEnabled reports whether Discord sign-in has credentials configured.
func (c Config) DiscordEnabled() bool {
	return c.DiscordClientID != "" && c.DiscordClientSecret != ""
}

func (c Config) Validate() error {
	var errs []error

	if c.AppPort == "" {
		errs = append(errs, errors.New("APP_PORT is required"))
	}

	switch c.StorageBackend {
	case BackendPostgres:
		if c.DatabaseDSN == "" {
			errs = append(errs, errors.New("DATABASE_DSN is required for the postgres storage backend"))
		}
	case BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend))
	}

	switch c.SessionBackend {
	case BackendRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required for the redis session backend"))
		}
	case BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown SESSION_BACKEND %q", c.SessionBackend))
	}

	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.TrustedOrigin == "" {
		errs = append(errs, errors.New("TRUSTED_ORIGIN is required"))
	}
	if c.SaltRounds < bcrypt.MinCost || c.SaltRounds > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("SALT_ROUNDS must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}

	if c.GoogleEnabled() && c.GoogleFillerPassword == "" {
		errs = append(errs, errors.New("GOOGLE_FILLER_PASSWORD is required when google sign-in is enabled"))
	}
	if c.DiscordEnabled() && c.DiscordFillerPassword == "" {
		errs = append(errs, errors.New("DISCORD_FILLER_PASSWORD is required when discord sign-in is enabled"))
	}

	if c.ProviderTimeout <= 0 {
		errs = append(errs, errors.New("PROVIDER_TIMEOUT must be positive"))
	}

	return errors.Join(errs...)
}
