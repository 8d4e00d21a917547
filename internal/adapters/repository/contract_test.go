package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/studylog-engine/internal/core/domain"
)

func day(y int, m time.Month, d int) domain.Date {
	return domain.Date{Year: y, Month: m, Day: d}
}

// runLogEntryContract checks the behavior every LogEntryRepository must share.
// userID must already exist where the backend enforces it.
func runLogEntryContract(t *testing.T, repo domain.LogEntryRepository, userID, otherUserID string) {
	ctx := context.Background()

	t.Run("Full CRUD Lifecycle", func(t *testing.T) {
		entry := domain.NewLogEntry(userID, "Past papers", "Chemistry", 45, day(2024, 3, 5))
		entry.Notes = "Original Note"

		require.NoError(t, repo.Create(ctx, entry))
		require.NotEmpty(t, entry.ID, "an ID is assigned when missing")

		fetched, err := repo.GetByID(ctx, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, "Past papers", fetched.Task)
		assert.Equal(t, 45, fetched.Minutes.Int())
		assert.Equal(t, day(2024, 3, 5), fetched.Date)
		assert.Equal(t, "Original Note", fetched.Notes)
		assert.Equal(t, 1, fetched.Version)

		fetched.Minutes = 60
		fetched.Notes = "Updated Note"
		require.NoError(t, repo.Update(ctx, fetched))
		assert.Equal(t, 2, fetched.Version, "version is bumped by the repository")

		updated, err := repo.GetByID(ctx, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, updated.Version)
		assert.Equal(t, 60, updated.Minutes.Int())

		assert.ErrorIs(t, repo.Delete(ctx, entry.ID, otherUserID), domain.ErrEntryNotFound, "delete is scoped to the owner")

		require.NoError(t, repo.Delete(ctx, entry.ID, userID))
		_, err = repo.GetByID(ctx, entry.ID)
		assert.ErrorIs(t, err, domain.ErrEntryNotFound)
	})

	t.Run("Optimistic Locking: Version Conflict", func(t *testing.T) {
		entry := domain.NewLogEntry(userID, "Essay", "", 10, day(2024, 3, 6))
		require.NoError(t, repo.Create(ctx, entry))

		clientA, _ := repo.GetByID(ctx, entry.ID)
		clientB, _ := repo.GetByID(ctx, entry.ID)

		clientA.Minutes = 20
		require.NoError(t, repo.Update(ctx, clientA))

		clientB.Minutes = 30
		err := repo.Update(ctx, clientB)

		assert.ErrorIs(t, err, domain.ErrEntryConflict, "stale base version must be rejected")
	})

	t.Run("Unknown entry", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrEntryNotFound)

		ghost := domain.NewLogEntry(userID, "Ghost", "", 1, day(2024, 1, 1))
		ghost.ID = uuid.NewString()
		assert.ErrorIs(t, repo.Update(ctx, ghost), domain.ErrEntryNotFound)
	})

	t.Run("List Methods: Ordering, Limit and Range", func(t *testing.T) {
		listUser := userID
		dates := []domain.Date{day(2023, 12, 30), day(2024, 1, 10), day(2024, 1, 12), day(2024, 1, 15)}
		ids := map[string]bool{}
		for i, d := range dates {
			e := domain.NewLogEntry(listUser, "Range task", "Ranges", 10*(i+1), d)
			require.NoError(t, repo.Create(ctx, e))
			ids[e.ID] = true
		}

		all, err := repo.ListByUserID(ctx, listUser)
		require.NoError(t, err)
		mine := keepIDs(all, ids)
		require.Len(t, mine, 4)
		assert.Equal(t, day(2024, 1, 15), mine[0].Date, "newest first")
		assert.Equal(t, day(2023, 12, 30), mine[3].Date)

		ranged, err := repo.ListByUserIDAndDateRange(ctx, listUser, day(2024, 1, 10), day(2024, 1, 12))
		require.NoError(t, err)
		assert.Len(t, keepIDs(ranged, ids), 2, "range is inclusive on both ends")

		recent, err := repo.ListRecent(ctx, listUser, 2)
		require.NoError(t, err)
		assert.Len(t, recent, 2)

		others, err := repo.ListByUserID(ctx, otherUserID)
		require.NoError(t, err)
		assert.Empty(t, keepIDs(others, ids), "rows never leak across users")
	})
}

func keepIDs(entries []domain.LogEntry, ids map[string]bool) []domain.LogEntry {
	out := []domain.LogEntry{}
	for _, e := range entries {
		if ids[e.ID] {
			out = append(out, e)
		}
	}
	return out
}
