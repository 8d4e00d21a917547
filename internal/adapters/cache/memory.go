package cache

import (
	"context"
	"sync"
	"time"

	"github.com/comitanigiacomo/studylog-engine/internal/core/domain"
)

type expiring struct {
	value     string
	expiresAt time.Time
}

// MemoryOAuthStateStore is the single-process fallback used when Redis is
// not available.
type MemoryOAuthStateStore struct {
	mu     sync.Mutex
	states map[string]expiring
	now    func() time.Time
}

func NewMemoryOAuthStateStore() *MemoryOAuthStateStore {
	return &MemoryOAuthStateStore{states: make(map[string]expiring), now: time.Now}
}

func (s *MemoryOAuthStateStore) Save(ctx context.Context, state, verifier string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	pruneExpired(s.states, now, func(v expiring) time.Time { return v.expiresAt })
	s.states[state] = expiring{value: verifier, expiresAt: now.Add(ttl)}
	return nil
}

func (s *MemoryOAuthStateStore) Consume(ctx context.Context, state string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.states[state]
	delete(s.states, state)
	if !ok || s.now().After(v.expiresAt) {
		return "", domain.ErrOAuthStateNotFound
	}
	return v.value, nil
}

type MemoryTokenRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryTokenRevocationStore() *MemoryTokenRevocationStore {
	return &MemoryTokenRevocationStore{revoked: make(map[string]time.Time), now: time.Now}
}

func (s *MemoryTokenRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	pruneExpired(s.revoked, now, func(until time.Time) time.Time { return until })
	s.revoked[tokenID] = now.Add(ttl)
	return nil
}

// Len reports how many token IDs are currently held.
func (s *MemoryTokenRevocationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.revoked)
}

func (s *MemoryTokenRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if s.now().After(until) {
		delete(s.revoked, tokenID)
		return false, nil
	}
	return true, nil
}

// pruneExpired drops every entry whose deadline is before now. Callers hold
// the store's lock.
func pruneExpired[V any](m map[string]V, now time.Time, deadline func(V) time.Time) {
	for k, v := range m {
		if now.After(deadline(v)) {
			delete(m, k)
		}
	}
}
