package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/samber/oops"

	"github.com/studyhub/auth-service/internal/utils"
)

type Client struct {
	*goredis.Client
}

// New connects to Redis and waits up to timeout for PING to succeed.
func New(ctx context.Context, addr, password string, timeout time.Duration) (*Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	err := utils.WaitFor(ctx, timeout, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		_ = client.Close()
		return nil, oops.Code("REDIS_UNREACHABLE").
			With("addr", addr).
			Wrap(err)
	}

	return &Client{Client: client}, nil
}
