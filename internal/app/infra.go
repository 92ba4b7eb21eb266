package app

import (
	"context"
	"errors"

	"github.com/studyhub/auth-service/internal/config"
	"github.com/studyhub/auth-service/internal/db"
	"github.com/studyhub/auth-service/internal/logger"
	"github.com/studyhub/auth-service/internal/redis"
	"github.com/studyhub/auth-service/internal/session"
	"github.com/studyhub/auth-service/internal/users"
)

// Infra holds the backing stores chosen by configuration.
type Infra struct {
	Users    users.Store
	Sessions session.Store
	closers  []func() error
}

func setupInfra(ctx context.Context, cfg config.Config) (_ *Infra, err error) {
	infra := &Infra{}
	defer func() {
		if err != nil {
			_ = infra.Close()
		}
	}()

	switch cfg.StorageBackend {
	case config.BackendPostgres:
		database, err := db.Open(ctx, cfg.DatabaseDSN, cfg.StartupTimeout)
		if err != nil {
			return nil, err
		}
		infra.closers = append(infra.closers, database.Close)

		if err := db.Migrate(ctx, database.DB); err != nil {
			return nil, err
		}
		infra.Users = users.NewPostgresStore(database.DB)
		logger.Info("database ready", nil)
	default:
		infra.Users = users.NewMemoryStore()
		logger.Warn("using in-memory user store; accounts are lost on restart", nil)
	}

	switch cfg.SessionBackend {
	case config.BackendRedis:
		client, err := redis.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.StartupTimeout)
		if err != nil {
			return nil, err
		}
		infra.closers = append(infra.closers, client.Close)
		infra.Sessions = session.NewRedisStore(client.Client)
		logger.Info("redis ready", map[string]any{"addr": cfg.RedisAddr})
	default:
		infra.Sessions = session.NewMemoryStore()
		logger.Warn("using in-memory session store; sessions are lost on restart", nil)
	}

	return infra, nil
}

// Close releases connections in reverse order of opening.
func (i *Infra) Close() error {
	var errs []error
	for n := len(i.closers) - 1; n >= 0; n-- {
		errs = append(errs, i.closers[n]())
	}
	i.closers = nil
	return errors.Join(errs...)
}
