package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/studylog-engine/internal/core/domain"
)

var (
	_ domain.LogEntryRepository = (*InMemoryLogEntryRepository)(nil)
	_ domain.UserRepository     = (*InMemoryUserRepository)(nil)
)

// InMemoryLogEntryRepository mirrors the Postgres repository's ordering and
// versioning rules. Callers get copies, never the stored values.
type InMemoryLogEntryRepository struct {
	store map[string]domain.LogEntry

	mu sync.RWMutex
}

func NewInMemoryLogEntryRepository() *InMemoryLogEntryRepository {
	return &InMemoryLogEntryRepository{
		store: make(map[string]domain.LogEntry),
	}
}

func (r *InMemoryLogEntryRepository) Create(ctx context.Context, entry *domain.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if _, ok := r.store[entry.ID]; ok {
		return domain.ErrEntryConflict
	}
	if entry.Version == 0 {
		entry.Version = 1
	}

	r.store[entry.ID] = *entry
	return nil
}

func (r *InMemoryLogEntryRepository) GetByID(ctx context.Context, id string) (*domain.LogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.store[id]
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	return &entry, nil
}

func (r *InMemoryLogEntryRepository) ListRecent(ctx context.Context, userID string, limit int) ([]domain.LogEntry, error) {
	entries := r.filter(userID, func(domain.LogEntry) bool { return true })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (r *InMemoryLogEntryRepository) ListByUserID(ctx context.Context, userID string) ([]domain.LogEntry, error) {
	return r.filter(userID, func(domain.LogEntry) bool { return true }), nil
}

func (r *InMemoryLogEntryRepository) ListByUserIDAndDateRange(ctx context.Context, userID string, from, to domain.Date) ([]domain.LogEntry, error) {
	return r.filter(userID, func(e domain.LogEntry) bool {
		return !e.Date.Before(from) && !e.Date.After(to)
	}), nil
}

func (r *InMemoryLogEntryRepository) Update(ctx context.Context, entry *domain.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store[entry.ID]
	if !ok || existing.UserID != entry.UserID {
		return domain.ErrEntryNotFound
	}
	if existing.Version != entry.Version {
		return domain.ErrEntryConflict
	}

	entry.Version++
	entry.UpdatedAt = time.Now().UTC()
	r.store[entry.ID] = *entry
	return nil
}

func (r *InMemoryLogEntryRepository) Delete(ctx context.Context, id string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store[id]
	if !ok || existing.UserID != userID {
		return domain.ErrEntryNotFound
	}

	delete(r.store, id)
	return nil
}

func (r *InMemoryLogEntryRepository) filter(userID string, keep func(domain.LogEntry) bool) []domain.LogEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := []domain.LogEntry{}
	for _, e := range r.store {
		if e.UserID == userID && keep(e) {
			entries = append(entries, e)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if c := entries[i].Date.Compare(entries[j].Date); c != 0 {
			return c > 0
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	return entries
}

type InMemoryUserRepository struct {
	store map[string]domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		store: make(map[string]domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.store {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}

	r.store[user.ID] = *user
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.ID == id })
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Email == email })
}

func (r *InMemoryUserRepository) GetByProviderSubject(ctx context.Context, provider, subject string) (*domain.User, error) {
	return r.find(func(u domain.User) bool {
		return u.ProviderSubject != "" && u.Provider == provider && u.ProviderSubject == subject
	})
}

func (r *InMemoryUserRepository) LinkProvider(ctx context.Context, id, provider, subject string) error {
	return r.update(id, func(u *domain.User) {
		u.Provider = provider
		u.ProviderSubject = subject
	})
}

func (r *InMemoryUserRepository) UpdateStreaks(ctx context.Context, id string, current, longest int) error {
	return r.update(id, func(u *domain.User) {
		u.CurrentStreak = current
		u.LongestStreak = longest
	})
}

func (r *InMemoryUserRepository) find(match func(domain.User) bool) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.store {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *InMemoryUserRepository) update(id string, apply func(*domain.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.store[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	apply(&u)
	u.UpdatedAt = time.Now().UTC()
	r.store[id] = u
	return nil
}
