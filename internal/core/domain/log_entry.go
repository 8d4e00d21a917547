package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrInvalidEntry = errors.New("invalid log entry data")
)

const (
	MaxTaskLen    = 200
	MaxProjectLen = 100
	MaxNotesLen   = 2000
)

type LogEntry struct {
	ID     string `json:"id" db:"id"`
	UserID string `json:"user_id" db:"user_id"`

	Task    string  `json:"task" db:"task"`
	Project string  `json:"project" db:"project"`
	Minutes Minutes `json:"minutes" db:"minutes"`
	Date    Date    `json:"date" db:"date"`
	Notes   string  `json:"notes" db:"notes"`

	Version   int       `json:"version" db:"version"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func NewLogEntry(userID, task, project string, minutes int, date Date) *LogEntry {
	now := time.Now().UTC()

	return &LogEntry{
		UserID:  userID,
		Task:    strings.TrimSpace(task),
		Project: strings.TrimSpace(project),
		Minutes: Minutes(minutes),
		Date:    date,

		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate enforces what storage needs. It deliberately has no minimum
// duration: zero-minute entries are accepted.
func (e *LogEntry) Validate() error {
	if strings.TrimSpace(e.UserID) == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidEntry)
	}
	if strings.TrimSpace(e.Task) == "" {
		return fmt.Errorf("%w: task is required", ErrInvalidEntry)
	}
	if utf8.RuneCountInString(e.Task) > MaxTaskLen {
		return fmt.Errorf("%w: task is too long (max %d chars)", ErrInvalidEntry, MaxTaskLen)
	}
	if utf8.RuneCountInString(e.Project) > MaxProjectLen {
		return fmt.Errorf("%w: project is too long (max %d chars)", ErrInvalidEntry, MaxProjectLen)
	}
	if utf8.RuneCountInString(e.Notes) > MaxNotesLen {
		return fmt.Errorf("%w: notes are too long (max %d chars)", ErrInvalidEntry, MaxNotesLen)
	}
	if e.Minutes < 0 {
		return fmt.Errorf("%w: minutes cannot be negative", ErrInvalidEntry)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidEntry)
	}
	return nil
}

// ProjectKey is the grouping key used by Aggregate.
func (e LogEntry) ProjectKey() string {
	if p := strings.TrimSpace(e.Project); p != "" {
		return p
	}
	return NoProjectLabel
}

// TaskKey is the grouping key used by Aggregate.
func (e LogEntry) TaskKey() string {
	if t := strings.TrimSpace(e.Task); t != "" {
		return t
	}
	return UntitledLabel
}
