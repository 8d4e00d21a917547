package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/studylog-engine/internal/core/domain"
)

const userColumns = `id, email, password_hash, provider, provider_subject, current_streak, longest_streak, created_at, updated_at`

var _ domain.UserRepository = (*PostgresUserRepository)(nil)

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Provider,
		nullString(user.ProviderSubject),
		user.CurrentStreak,
		user.LongestStreak,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("repository: create user failed: %w", err)
	}

	return nil
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "email", `WHERE email = $1`, email)
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, "id", `WHERE id::text = $1`, id)
}

func (r *PostgresUserRepository) GetByProviderSubject(ctx context.Context, provider, subject string) (*domain.User, error) {
	return r.getOne(ctx, "provider subject", `WHERE provider = $1 AND provider_subject = $2`, provider, subject)
}

func (r *PostgresUserRepository) getOne(ctx context.Context, lookup, where string, args ...any) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users ` + where

	var user domain.User
	var subject sql.NullString

	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Provider,
		&subject,
		&user.CurrentStreak,
		&user.LongestStreak,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("repository: get user by %s failed: %w", lookup, err)
	}

	user.ProviderSubject = subject.String
	return &user, nil
}

func (r *PostgresUserRepository) LinkProvider(ctx context.Context, id, provider, subject string) error {
	return r.updateOne(ctx, "link provider",
		`UPDATE users SET provider = $2, provider_subject = $3, updated_at = $4 WHERE id::text = $1`,
		id, provider, subject, time.Now().UTC())
}

func (r *PostgresUserRepository) UpdateStreaks(ctx context.Context, id string, current, longest int) error {
	return r.updateOne(ctx, "update streaks",
		`UPDATE users SET current_streak = $2, longest_streak = $3, updated_at = $4 WHERE id::text = $1`,
		id, current, longest, time.Now().UTC())
}

func (r *PostgresUserRepository) updateOne(ctx context.Context, op, query string, args ...any) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("repository: %s failed: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
