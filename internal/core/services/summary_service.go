package services

import (
	"context"
	"errors"

	"github.com/comitanigiacomo/studylog-engine/internal/core/domain"
)

var ErrInvalidDateRange = errors.New("start date cannot be after end date")

var (
	earliestDate = domain.Date{Year: 1, Month: 1, Day: 1}
	latestDate   = domain.Date{Year: 9999, Month: 12, Day: 31}
)

type SummaryService struct {
	entryRepo domain.LogEntryRepository
	userRepo  domain.UserRepository
}

func NewSummaryService(entryRepo domain.LogEntryRepository, userRepo domain.UserRepository) *SummaryService {
	return &SummaryService{
		entryRepo: entryRepo,
		userRepo:  userRepo,
	}
}

func (s *SummaryService) GetSummary(ctx context.Context, input domain.SummaryInput) (*domain.Summary, error) {
	entries, err := loadEntries(ctx, s.entryRepo, input.UserID, input.From, input.To)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	groups := domain.Aggregate(entries)

	return &domain.Summary{
		From:          input.From.String(),
		To:            input.To.String(),
		TotalEntries:  len(entries),
		TotalMinutes:  domain.TotalMinutes(groups),
		CurrentStreak: user.CurrentStreak,
		LongestStreak: user.LongestStreak,
		Projects:      groups,
	}, nil
}

// loadEntries reads the full history when no bound is given and an
// inclusive range otherwise. A missing bound is open-ended.
func loadEntries(ctx context.Context, repo domain.LogEntryRepository, userID string, from, to domain.Date) ([]domain.LogEntry, error) {
	if from.IsZero() && to.IsZero() {
		return repo.ListByUserID(ctx, userID)
	}

	if from.IsZero() {
		from = earliestDate
	}
	if to.IsZero() {
		to = latestDate
	}
	if from.After(to) {
		return nil, ErrInvalidDateRange
	}

	return repo.ListByUserIDAndDateRange(ctx, userID, from, to)
}
