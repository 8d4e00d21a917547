package workers

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/comitanigiacomo/studylog-engine/internal/core/domain"
)

const queueSize = 100

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateStreaks(ctx context.Context, id string, current, longest int) error
}

type EntryRepository interface {
	ListByUserID(ctx context.Context, userID string) ([]domain.LogEntry, error)
}

type StreakJob struct {
	UserID string
}

// StreakWorker recomputes a user's consecutive study days in the background
// after their log changes.
type StreakWorker struct {
	userRepo  UserRepository
	entryRepo EntryRepository
	jobs      chan StreakJob
	location  *time.Location
	now       func() time.Time
}

func NewStreakWorker(uRepo UserRepository, eRepo EntryRepository) *StreakWorker {
	return &StreakWorker{
		userRepo:  uRepo,
		entryRepo: eRepo,
		jobs:      make(chan StreakJob, queueSize),
		location:  time.UTC,
		now:       time.Now,
	}
}

// WithLocation sets the zone whose calendar decides what "today" is.
func (w *StreakWorker) WithLocation(loc *time.Location) *StreakWorker {
	if loc != nil {
		w.location = loc
	}
	return w
}

func (w *StreakWorker) Start(ctx context.Context) {
	go func() {
		log.Println("[WORKER] Streak worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("[WORKER] Streak worker shutting down...")
				return
			}
		}
	}()
}

// Enqueue never blocks; jobs are dropped when the queue is full.
func (w *StreakWorker) Enqueue(userID string) {
	if w == nil {
		return
	}
	select {
	case w.jobs <- StreakJob{UserID: userID}:
	default:
		log.Printf("[WORKER] Streak queue full! Dropping job for user %s", userID)
	}
}

func (w *StreakWorker) processJob(ctx context.Context, job StreakJob) {
	user, err := w.userRepo.GetByID(ctx, job.UserID)
	if err != nil {
		log.Printf("[WORKER] Error fetching user %s: %v", job.UserID, err)
		return
	}

	entries, err := w.entryRepo.ListByUserID(ctx, job.UserID)
	if err != nil {
		log.Printf("[WORKER] Error fetching entries for %s: %v", job.UserID, err)
		return
	}

	dates := make([]domain.Date, 0, len(entries))
	for _, e := range entries {
		dates = append(dates, e.Date)
	}

	today := domain.TodayAt(w.now(), w.location)
	current, longest := CalculateStreaks(dates, today)

	if user.CurrentStreak != current || user.LongestStreak != longest {
		if err := w.userRepo.UpdateStreaks(ctx, user.ID, current, longest); err != nil {
			log.Printf("[WORKER] Failed to update streak for %s: %v", job.UserID, err)
		} else {
			log.Printf("[WORKER] Streak updated for %s: Current=%d, Longest=%d", user.ID, current, longest)
		}
	}
}

// CalculateStreaks counts runs of consecutive calendar days. The current
// streak is still alive when the latest day is yesterday, today or
// tomorrow: entries are dated in the caller's zone, which can be one
// calendar day ahead of the worker's. Every logged day counts, whatever its
// duration.
func CalculateStreaks(dates []domain.Date, today domain.Date) (int, int) {
	uniqueDays := make(map[domain.Date]bool)
	var sortedDates []domain.Date

	for _, d := range dates {
		if d.IsZero() || uniqueDays[d] {
			continue
		}
		uniqueDays[d] = true
		sortedDates = append(sortedDates, d)
	}

	if len(sortedDates) == 0 {
		return 0, 0
	}

	sort.Slice(sortedDates, func(i, j int) bool {
		return sortedDates[i].After(sortedDates[j])
	})

	currentStreak := 0
	gap := sortedDates[0].DaysUntil(today)

	if gap >= -1 && gap <= 1 {
		currentStreak = 1
		for i := 0; i < len(sortedDates)-1; i++ {
			if sortedDates[i+1].DaysUntil(sortedDates[i]) == 1 {
				currentStreak++
			} else {
				break
			}
		}
	}

	longestStreak := 0
	tempStreak := 1

	for i := 0; i < len(sortedDates)-1; i++ {
		if sortedDates[i+1].DaysUntil(sortedDates[i]) == 1 {
			tempStreak++
		} else {
			if tempStreak > longestStreak {
				longestStreak = tempStreak
			}
			tempStreak = 1
		}
	}
	if tempStreak > longestStreak {
		longestStreak = tempStreak
	}

	return currentStreak, longestStreak
}
