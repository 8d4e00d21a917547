package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrEntryNotFound = errors.New("log entry not found")
	ErrEntryConflict = errors.New("log entry version conflict")
)

type LogEntryRepository interface {
	// Create persists a new entry to the storage.
	Create(ctx context.Context, entry *LogEntry) error

	// Update modifies an existing entry.
	// Implementations must handle Optimistic Locking (version check) to prevent lost updates.
	Update(ctx context.Context, entry *LogEntry) error

	// Delete removes the entry.
	// It requires userID to ensure the user actually owns the entry being deleted.
	Delete(ctx context.Context, id string, userID string) error

	// GetByID retrieves a single entry by its ID.
	GetByID(ctx context.Context, id string) (*LogEntry, error)

	// ListRecent returns the newest entries of a user, date first, then creation time.
	ListRecent(ctx context.Context, userID string, limit int) ([]LogEntry, error)

	// ListByUserID returns the complete history of a user. Used by the summary,
	// the export and the streak worker.
	ListByUserID(ctx context.Context, userID string) ([]LogEntry, error)

	// ListByUserIDAndDateRange returns entries whose date falls in [from, to].
	ListByUserIDAndDateRange(ctx context.Context, userID string, from, to Date) ([]LogEntry, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByProviderSubject finds the account linked to an external identity.
	GetByProviderSubject(ctx context.Context, provider, subject string) (*User, error)

	// LinkProvider attaches an external identity to an existing account.
	LinkProvider(ctx context.Context, id, provider, subject string) error

	UpdateStreaks(ctx context.Context, id string, current, longest int) error
}

// OAuthStateStore keeps the PKCE verifier of an authorization request until
// the provider redirects back. Consume is single use.
type OAuthStateStore interface {
	Save(ctx context.Context, state, verifier string, ttl time.Duration) error
	Consume(ctx context.Context, state string) (string, error)
}

// TokenRevocationStore remembers signed-out token IDs until they expire.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
