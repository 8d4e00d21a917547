package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/studylog-engine/internal/core/domain"
)

var _ domain.OAuthStateStore = (*RedisOAuthStateStore)(nil)

// RedisOAuthStateStore maps a pending OAuth state to its PKCE verifier.
// Consume uses GETDEL so a state can complete at most one sign-in.
type RedisOAuthStateStore struct {
	client *redis.Client
}

func NewRedisOAuthStateStore(client *redis.Client) *RedisOAuthStateStore {
	return &RedisOAuthStateStore{client: client}
}

func (s *RedisOAuthStateStore) key(state string) string {
	return fmt.Sprintf("oauth_state:%s", state)
}

func (s *RedisOAuthStateStore) Save(ctx context.Context, state, verifier string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(state), verifier, ttl).Err()
}

func (s *RedisOAuthStateStore) Consume(ctx context.Context, state string) (string, error) {
	verifier, err := s.client.GetDel(ctx, s.key(state)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrOAuthStateNotFound
	}
	if err != nil {
		return "", fmt.Errorf("oauth state store: %w", err)
	}
	return verifier, nil
}
