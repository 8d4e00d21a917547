package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/studylog-engine/internal/core/domain"
)

func TestPostgresUserRepository_Create(t *testing.T) {
	repo := NewPostgresUserRepository(openTestDB(t).DB)
	ctx := context.Background()

	t.Run("Should create a user successfully", func(t *testing.T) {
		t.Parallel()

		email := fmt.Sprintf("test_%s@example.com", uuid.NewString())
		id := uuid.NewString()

		user, err := domain.NewUser(id, email)
		if err != nil {
			t.Fatalf("Failed to create domain user: %v", err)
		}
		_ = user.SetPassword("passwordStrong123")

		err = repo.Create(ctx, user)
		if err != nil {
			t.Errorf("Expected no error, got %v", err)
		}

		savedUser, err := repo.GetByEmail(ctx, user.Email)
		if err != nil {
			t.Fatalf("Could not retrieve saved user: %v", err)
		}

		if savedUser.ID != user.ID {
			t.Errorf("Expected ID %s, got %s", user.ID, savedUser.ID)
		}
		if savedUser.Provider != domain.ProviderPassword {
			t.Errorf("Expected provider %q, got %q", domain.ProviderPassword, savedUser.Provider)
		}
		if savedUser.ProviderSubject != "" {
			t.Errorf("Expected no provider subject, got %q", savedUser.ProviderSubject)
		}
		if savedUser.CreatedAt.IsZero() || savedUser.UpdatedAt.IsZero() {
			t.Error("Timestamps should not be zero")
		}
	})

	t.Run("Should fail on duplicate email", func(t *testing.T) {
		t.Parallel()

		email := fmt.Sprintf("duplicate_%s@example.com", uuid.NewString())
		user1, _ := domain.NewUser(uuid.NewString(), email)
		_ = repo.Create(ctx, user1)

		user2, _ := domain.NewUser(uuid.NewString(), email)

		err := repo.Create(ctx, user2)

		if err != domain.ErrEmailAlreadyExists {
			t.Errorf("Expected ErrEmailAlreadyExists, got %v", err)
		}
	})
}

func TestPostgresUserRepository_Lookups(t *testing.T) {
	repo := NewPostgresUserRepository(openTestDB(t).DB)
	ctx := context.Background()

	email := fmt.Sprintf("lookup_%s@example.com", uuid.NewString())
	subject := "google-" + uuid.NewString()
	user, _ := domain.NewOAuthUser(uuid.NewString(), email, domain.ProviderGoogle, subject)
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}

	t.Run("Should retrieve existing user by ID", func(t *testing.T) {
		found, err := repo.GetByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if found.Email != user.Email {
			t.Errorf("Expected email %s, got %s", user.Email, found.Email)
		}
	})

	t.Run("Should retrieve existing user by provider subject", func(t *testing.T) {
		found, err := repo.GetByProviderSubject(ctx, domain.ProviderGoogle, subject)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if found.ID != user.ID {
			t.Errorf("Expected ID %s, got %s", user.ID, found.ID)
		}
	})

	t.Run("Should return ErrUserNotFound for unknown keys", func(t *testing.T) {
		if _, err := repo.GetByID(ctx, uuid.NewString()); err != domain.ErrUserNotFound {
			t.Errorf("Expected ErrUserNotFound by id, got %v", err)
		}
		if _, err := repo.GetByEmail(ctx, "nonexistent@ghost.com"); err != domain.ErrUserNotFound {
			t.Errorf("Expected ErrUserNotFound by email, got %v", err)
		}
		if _, err := repo.GetByProviderSubject(ctx, domain.ProviderGoogle, "nobody"); err != domain.ErrUserNotFound {
			t.Errorf("Expected ErrUserNotFound by subject, got %v", err)
		}
	})
}

func TestPostgresUserRepository_Updates(t *testing.T) {
	repo := NewPostgresUserRepository(openTestDB(t).DB)
	ctx := context.Background()

	user, _ := domain.NewUser(uuid.NewString(), fmt.Sprintf("updates_%s@example.com", uuid.NewString()))
	_ = user.SetPassword("passwordStrong123")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}

	t.Run("Should link an external identity", func(t *testing.T) {
		if err := repo.LinkProvider(ctx, user.ID, domain.ProviderGoogle, "linked-sub"+user.ID); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		found, _ := repo.GetByID(ctx, user.ID)
		if found.Provider != domain.ProviderGoogle || found.PasswordHash == "" {
			t.Errorf("Expected linked account to keep its password, got %+v", found)
		}
	})

	t.Run("Should store streaks", func(t *testing.T) {
		if err := repo.UpdateStreaks(ctx, user.ID, 5, 12); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		found, _ := repo.GetByID(ctx, user.ID)
		if found.CurrentStreak != 5 || found.LongestStreak != 12 {
			t.Errorf("Expected streaks 5/12, got %d/%d", found.CurrentStreak, found.LongestStreak)
		}
	})

	t.Run("Should report unknown user", func(t *testing.T) {
		if err := repo.UpdateStreaks(ctx, uuid.NewString(), 1, 1); err != domain.ErrUserNotFound {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})
}
