package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/studylog-engine/internal/core/domain"
)

var ErrUnknownUser = errors.New("referenced user does not exist")

var _ domain.LogEntryRepository = (*PostgresLogEntryRepository)(nil)

const entryColumns = `id, user_id, task, project, minutes, date, notes, version, created_at, updated_at`

type PostgresLogEntryRepository struct {
	db *sqlx.DB
}

func NewPostgresLogEntryRepository(db *sqlx.DB) *PostgresLogEntryRepository {
	return &PostgresLogEntryRepository{db: db}
}

func (r *PostgresLogEntryRepository) Create(ctx context.Context, entry *domain.LogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	query := `
		INSERT INTO study_log (
			id, user_id,
			task, project, minutes, date, notes,
			version, created_at, updated_at
		) VALUES (
			:id, :user_id,
			:task, :project, :minutes, :date, :notes,
			:version, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		switch pgErrorCode(err) {
		case pgForeignKeyViolation:
			return ErrUnknownUser
		case pgUniqueViolation:
			return domain.ErrEntryConflict
		}
		return fmt.Errorf("repository: create entry failed: %w", err)
	}
	return nil
}

func (r *PostgresLogEntryRepository) GetByID(ctx context.Context, id string) (*domain.LogEntry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrEntryNotFound
	}

	var entry domain.LogEntry
	query := `SELECT ` + entryColumns + ` FROM study_log WHERE id = $1`

	err := r.db.GetContext(ctx, &entry, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// ListRecent returns the newest entries first, as the table shows them.
func (r *PostgresLogEntryRepository) ListRecent(ctx context.Context, userID string, limit int) ([]domain.LogEntry, error) {
	entries := []domain.LogEntry{}

	query := `
		SELECT ` + entryColumns + ` FROM study_log
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2`

	if err := r.db.SelectContext(ctx, &entries, query, userID, limit); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *PostgresLogEntryRepository) ListByUserID(ctx context.Context, userID string) ([]domain.LogEntry, error) {
	entries := []domain.LogEntry{}

	query := `
		SELECT ` + entryColumns + ` FROM study_log
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC`

	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListByUserIDAndDateRange is inclusive on both ends.
func (r *PostgresLogEntryRepository) ListByUserIDAndDateRange(ctx context.Context, userID string, from, to domain.Date) ([]domain.LogEntry, error) {
	entries := []domain.LogEntry{}

	query := `
		SELECT ` + entryColumns + ` FROM study_log
		WHERE user_id = $1
		  AND date >= $2
		  AND date <= $3
		ORDER BY date DESC, created_at DESC`

	if err := r.db.SelectContext(ctx, &entries, query, userID, from, to); err != nil {
		return nil, err
	}
	return entries, nil
}

// Update bumps the version and only succeeds when the stored row still has
// the version the caller read.
func (r *PostgresLogEntryRepository) Update(ctx context.Context, entry *domain.LogEntry) error {
	entry.Version++
	entry.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE study_log
		SET task = :task,
		    project = :project,
		    minutes = :minutes,
		    date = :date,
		    notes = :notes,
		    version = :version,
		    updated_at = :updated_at
		WHERE id = :id
		  AND user_id = :user_id
		  AND version = :version - 1`

	result, err := r.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		entry.Version--
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		entry.Version--
		exists, _ := r.exists(ctx, entry.ID)
		if !exists {
			return domain.ErrEntryNotFound
		}
		return domain.ErrEntryConflict
	}

	return nil
}

func (r *PostgresLogEntryRepository) Delete(ctx context.Context, id string, userID string) error {
	query := `DELETE FROM study_log WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

func (r *PostgresLogEntryRepository) exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT count(*) FROM study_log WHERE id = $1", id)
	return count > 0, err
}
