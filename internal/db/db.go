package db

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/samber/oops"

	"github.com/studyhub/auth-service/internal/utils"
)

type DB struct {
	*sql.DB
}

// Open connects to Postgres and waits up to timeout for it to answer.
func Open(ctx context.Context, dsn string, timeout time.Duration) (*DB, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, oops.Code("DB_OPEN_FAILED").Wrap(err)
	}

	if err := utils.WaitFor(ctx, timeout, sqlDB.PingContext); err != nil {
		_ = sqlDB.Close()
		return nil, oops.Code("DB_UNREACHABLE").
			With("timeout", timeout.String()).
			Wrap(err)
	}

	return &DB{DB: sqlDB}, nil
}
