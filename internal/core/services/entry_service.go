package services

import (
	"context"
	"strings"
	"time"

	"github.com/comitanigiacomo/studylog-engine/internal/core/domain"
)

const DefaultTableLimit = 100

// StreakNotifier is told about every user whose log changed.
type StreakNotifier interface {
	Enqueue(userID string)
}

type EntryService struct {
	repo       domain.LogEntryRepository
	notifier   StreakNotifier
	tableLimit int
	now        func() time.Time
}

func NewEntryService(repo domain.LogEntryRepository, notifier StreakNotifier, tableLimit int) *EntryService {
	if tableLimit < 1 {
		tableLimit = DefaultTableLimit
	}
	return &EntryService{
		repo:       repo,
		notifier:   notifier,
		tableLimit: tableLimit,
		now:        time.Now,
	}
}

// WithClock replaces the time source used for "today".
func (s *EntryService) WithClock(now func() time.Time) *EntryService {
	s.now = now
	return s
}

type CreateEntryInput struct {
	UserID  string
	Task    string
	Project string
	Minutes int
	// Date is display (dd/mm/yyyy) or canonical (YYYY-MM-DD) text.
	// Empty means today in Location.
	Date     string
	Notes    string
	Location *time.Location
}

type UpdateEntryInput struct {
	ID       string
	UserID   string
	Task     string
	Project  string
	Minutes  int
	Date     string
	Notes    string
	Version  int
	Location *time.Location
}

func (s *EntryService) resolveDate(text string, loc *time.Location) (domain.Date, error) {
	if strings.TrimSpace(text) == "" {
		if loc == nil {
			loc = time.UTC
		}
		return domain.TodayAt(s.now(), loc), nil
	}
	return domain.ParseAny(text)
}

func (s *EntryService) Create(ctx context.Context, input CreateEntryInput) (*domain.LogEntry, error) {
	date, err := s.resolveDate(input.Date, input.Location)
	if err != nil {
		return nil, err
	}

	entry := domain.NewLogEntry(input.UserID, input.Task, input.Project, input.Minutes, date)
	entry.Notes = strings.TrimSpace(input.Notes)

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.notify(entry.UserID)

	return entry, nil
}

func (s *EntryService) Update(ctx context.Context, input UpdateEntryInput) (*domain.LogEntry, error) {
	existing, err := s.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && existing.Version != input.Version {
		return nil, domain.ErrEntryConflict
	}

	date := existing.Date
	if strings.TrimSpace(input.Date) != "" {
		date, err = s.resolveDate(input.Date, input.Location)
		if err != nil {
			return nil, err
		}
	}

	updated := *existing
	updated.Task = strings.TrimSpace(input.Task)
	updated.Project = strings.TrimSpace(input.Project)
	updated.Minutes = domain.Minutes(input.Minutes)
	updated.Date = date
	updated.Notes = strings.TrimSpace(input.Notes)

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	s.notify(updated.UserID)

	return &updated, nil
}

func (s *EntryService) GetByID(ctx context.Context, id string, userID string) (*domain.LogEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return entry, nil
}

// List returns the newest entries, at most the configured table limit.
func (s *EntryService) List(ctx context.Context, userID string, limit int) ([]domain.LogEntry, error) {
	if limit < 1 || limit > s.tableLimit {
		limit = s.tableLimit
	}
	return s.repo.ListRecent(ctx, userID, limit)
}

func (s *EntryService) Delete(ctx context.Context, id string, userID string) error {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if entry.UserID != userID {
		return domain.ErrUnauthorized
	}

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.notify(userID)

	return nil
}

func (s *EntryService) notify(userID string) {
	if s.notifier != nil {
		s.notifier.Enqueue(userID)
	}
}
