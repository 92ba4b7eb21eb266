//go:build integration

package users_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/studyhub/auth-service/internal/db"
	"github.com/studyhub/auth-service/internal/users"
)

func startPostgres(t *testing.T) *db.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("auth"),
		postgres.WithUsername("auth"),
		postgres.WithPassword("auth"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	database, err := db.Open(ctx, dsn, 10*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, db.Migrate(ctx, database.DB))
	// a second run is a no-op
	require.NoError(t, db.Migrate(ctx, database.DB))

	return database
}

func TestPostgresStore_Integration(t *testing.T) {
	database := startPostgres(t)
	store := users.NewPostgresStore(database.DB)
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	_, err := store.FindByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, users.ErrNotFound)

	created, err := store.Create(ctx, "a@x.com", "digest")
	require.NoError(t, err)

	found, err := store.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created, found)

	_, err = store.Create(ctx, "a@x.com", "other")
	assert.ErrorIs(t, err, users.ErrDuplicateEmail)

	// stored verbatim
	_, err = store.FindByEmail(ctx, "A@X.COM")
	assert.ErrorIs(t, err, users.ErrNotFound)
}

func TestPostgresStore_ConcurrentCreateIntegration(t *testing.T) {
	database := startPostgres(t)
	store := users.NewPostgresStore(database.DB)

	const writers = 20
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		successes  int
		duplicates int
	)
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Create(context.Background(), "race@x.com", "digest")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, users.ErrDuplicateEmail):
				duplicates++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, writers-1, duplicates)
}
