package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/studylog-engine/internal/config"
	"github.com/comitanigiacomo/studylog-engine/internal/core/domain"
)

// testRedisConfig is the default pool pointed at DB 1, with connection
// details from .env or the environment.
func testRedisConfig() config.RedisConfig {
	_ = godotenv.Load("../../../.env")

	cfg := config.DefaultConfig()
	cfg.ApplyEnvironmentOverrides()
	cfg.Redis.DB = 1
	return cfg.Redis
}

func newTestClient(t *testing.T) *redis.Client {
	t.Helper()

	rdb, err := NewRedisClient(testRedisConfig())
	if err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestRedisClient_Integration(t *testing.T) {
	rdb := newTestClient(t)
	ctx := context.Background()

	t.Run("Uses the configured database", func(t *testing.T) {
		assert.Equal(t, 1, rdb.Options().DB)
		assert.Equal(t, 10, rdb.Options().PoolSize)
		assert.Equal(t, 3*time.Second, rdb.Options().ReadTimeout)
	})

	t.Run("Cached log entries lapse with their TTL", func(t *testing.T) {
		key := "studylog:test:entries:" + uuid.NewString()
		require.NoError(t, rdb.Set(ctx, key, `[{"task":"Integrals"}]`, time.Second).Err())

		time.Sleep(1100 * time.Millisecond)

		_, err := rdb.Get(ctx, key).Result()
		assert.ErrorIs(t, err, redis.Nil)
	})

	t.Run("Concurrent users share the pool", func(t *testing.T) {
		const users = 20
		errs := make(chan error, users)
		run := uuid.NewString()

		for i := 0; i < users; i++ {
			go func(n int) {
				key := fmt.Sprintf("studylog:test:%s:user-%d", run, n)
				if err := rdb.Set(ctx, key, n, 10*time.Second).Err(); err != nil {
					errs <- err
					return
				}
				got, err := rdb.Get(ctx, key).Int()
				if err == nil && got != n {
					err = fmt.Errorf("user-%d read back %d", n, got)
				}
				errs <- err
			}(i)
		}

		for i := 0; i < users; i++ {
			assert.NoError(t, <-errs)
		}
	})
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	cfg := config.DefaultConfig().Redis
	cfg.Host, cfg.Port = "127.0.0.1", "1"
	cfg.DialTimeout = 200 * time.Millisecond

	_, err := NewRedisClient(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis 127.0.0.1:1 (db 0)")
}

func TestRedisOAuthStateStore(t *testing.T) {
	store := NewRedisOAuthStateStore(newTestClient(t))
	ctx := context.Background()

	t.Run("State is single use", func(t *testing.T) {
		state := uuid.NewString()
		require.NoError(t, store.Save(ctx, state, "verifier-abc", time.Minute))

		verifier, err := store.Consume(ctx, state)
		require.NoError(t, err)
		assert.Equal(t, "verifier-abc", verifier)

		_, err = store.Consume(ctx, state)
		assert.ErrorIs(t, err, domain.ErrOAuthStateNotFound, "replay must fail")
	})

	t.Run("Unknown state", func(t *testing.T) {
		_, err := store.Consume(ctx, uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrOAuthStateNotFound)
	})

	t.Run("State expires", func(t *testing.T) {
		state := uuid.NewString()
		require.NoError(t, store.Save(ctx, state, "v", 500*time.Millisecond))
		time.Sleep(700 * time.Millisecond)

		_, err := store.Consume(ctx, state)
		assert.ErrorIs(t, err, domain.ErrOAuthStateNotFound)
	})
}

func TestRedisTokenRevocationStore(t *testing.T) {
	store := NewRedisTokenRevocationStore(newTestClient(t))
	ctx := context.Background()
	tokenID := uuid.NewString()

	revoked, err := store.IsRevoked(ctx, tokenID)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, tokenID, time.Minute))

	revoked, err = store.IsRevoked(ctx, tokenID)
	require.NoError(t, err)
	assert.True(t, revoked)

	expired := uuid.NewString()
	require.NoError(t, store.Revoke(ctx, expired, -time.Second))
	revoked, _ = store.IsRevoked(ctx, expired)
	assert.False(t, revoked, "already expired tokens are not stored")
}
