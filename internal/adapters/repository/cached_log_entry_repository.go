package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/studylog-engine/internal/core/domain"
)

const entryCacheTTL = 30 * time.Minute

var _ domain.LogEntryRepository = (*CachedLogEntryRepository)(nil)

// CachedLogEntryRepository keeps each user's full history in Redis. Only
// ListByUserID is served from the cache; every write by the user drops it.
type CachedLogEntryRepository struct {
	next  domain.LogEntryRepository
	cache *redis.Client
}

func NewCachedLogEntryRepository(next domain.LogEntryRepository, cache *redis.Client) *CachedLogEntryRepository {
	return &CachedLogEntryRepository{
		next:  next,
		cache: cache,
	}
}

func (r *CachedLogEntryRepository) cacheKey(userID string) string {
	return fmt.Sprintf("entries:%s", userID)
}

func (r *CachedLogEntryRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, r.cacheKey(userID)).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate for user %s: %v", userID, err)
	}
}

func (r *CachedLogEntryRepository) ListByUserID(ctx context.Context, userID string) ([]domain.LogEntry, error) {
	key := r.cacheKey(userID)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var entries []domain.LogEntry
		if err := json.Unmarshal([]byte(val), &entries); err == nil {
			return entries, nil
		}

		log.Printf("[CACHE] Corrupted data for user %s, cleaning up key", userID)
		r.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	entries, err := r.next.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(entries); err == nil {
		if setErr := r.cache.Set(ctx, key, data, entryCacheTTL).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return entries, nil
}

func (r *CachedLogEntryRepository) ListRecent(ctx context.Context, userID string, limit int) ([]domain.LogEntry, error) {
	return r.next.ListRecent(ctx, userID, limit)
}

func (r *CachedLogEntryRepository) ListByUserIDAndDateRange(ctx context.Context, userID string, from, to domain.Date) ([]domain.LogEntry, error) {
	return r.next.ListByUserIDAndDateRange(ctx, userID, from, to)
}

func (r *CachedLogEntryRepository) GetByID(ctx context.Context, id string) (*domain.LogEntry, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedLogEntryRepository) Create(ctx context.Context, entry *domain.LogEntry) error {
	if err := r.next.Create(ctx, entry); err != nil {
		return err
	}
	r.invalidate(ctx, entry.UserID)
	return nil
}

func (r *CachedLogEntryRepository) Update(ctx context.Context, entry *domain.LogEntry) error {
	if err := r.next.Update(ctx, entry); err != nil {
		return err
	}
	r.invalidate(ctx, entry.UserID)
	return nil
}

func (r *CachedLogEntryRepository) Delete(ctx context.Context, id string, userID string) error {
	if err := r.next.Delete(ctx, id, userID); err != nil {
		return err
	}
	r.invalidate(ctx, userID)
	return nil
}
