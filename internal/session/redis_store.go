package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/samber/oops"

	"github.com/studyhub/auth-service/internal/users"
)

const redisKeyPrefix = "session:"

type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: redisKeyPrefix,
	}
}

// record is the stored JSON. users.User hides its hash from JSON, so the
// row is flattened here to keep it.
type record struct {
	UserID       uuid.UUID `json:"user_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (r *RedisStore) key(id string) string {
	return r.prefix + id
}

func (r *RedisStore) Create(ctx context.Context, s Session, ttl time.Duration) error {
	if s.ID == "" || s.User.ID == uuid.Nil {
		return errors.New("session: missing id or user")
	}
	if ttl <= 0 {
		return errors.New("session: ttl must be positive")
	}

	data, err := json.Marshal(record{
		UserID:       s.User.ID,
		Email:        s.User.Email,
		PasswordHash: s.User.PasswordHash,
		CreatedAt:    s.CreatedAt,
		ExpiresAt:    s.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("session: failed to marshal: %w", err)
	}

	if err := r.client.Set(ctx, r.key(s.ID), data, ttl).Err(); err != nil {
		return oops.Code("SESSION_STORE_FAILED").With("operation", "set").Wrap(err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	val, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, oops.Code("SESSION_STORE_FAILED").With("operation", "get").Wrap(err)
	}

	var rec record
	if err := json.Unmarshal(val, &rec); err != nil {
		return nil, fmt.Errorf("session: failed to unmarshal: %w", err)
	}

	return &Session{
		ID: id,
		User: users.User{
			ID:           rec.UserID,
			Email:        rec.Email,
			PasswordHash: rec.PasswordHash,
		},
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return oops.Code("SESSION_STORE_FAILED").With("operation", "del").Wrap(err)
	}
	return nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return oops.Code("SESSION_STORE_UNAVAILABLE").Wrap(err)
	}
	return nil
}
