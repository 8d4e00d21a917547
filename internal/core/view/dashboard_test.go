package view_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/studylog-engine/internal/core/domain"
	"github.com/comitanigiacomo/studylog-engine/internal/core/view"
)

var student = &domain.User{ID: "u-1", Email: "student@example.com"}

func entry(project, task string, minutes int, day int) domain.LogEntry {
	return domain.LogEntry{
		ID:      fmt.Sprintf("%s-%s-%d", project, task, day),
		Project: project,
		Task:    task,
		Minutes: domain.Minutes(minutes),
		Date:    domain.Date{Year: 2024, Month: time.May, Day: day},
		Notes:   "note " + task,
	}
}

func TestRender_Status(t *testing.T) {
	ui := view.DefaultCopy()

	t.Run("Signed out", func(t *testing.T) {
		d := view.Render(view.State{Entries: []domain.LogEntry{entry("A", "x", 10, 1)}}, ui)

		assert.Equal(t, view.StatusSignedOut, d.Status)
		assert.Equal(t, ui.EmptySignedOut, d.Message)
		assert.Equal(t, ui.SignInLabel, d.ActionLabel)
		assert.Nil(t, d.Table, "signed-out view never shows rows")
		assert.Nil(t, d.Projects)
	})

	t.Run("Load error", func(t *testing.T) {
		d := view.Render(view.State{User: student, LoadErr: errors.New("boom")}, ui)

		assert.Equal(t, view.StatusError, d.Status)
		assert.Equal(t, ui.LoadFailed, d.Message)
		assert.Equal(t, ui.SignOutLabel, d.ActionLabel)
		assert.Equal(t, "student@example.com", d.SignedInAs)
		assert.Nil(t, d.Table)
	})

	t.Run("Empty log", func(t *testing.T) {
		d := view.Render(view.State{User: student}, ui)

		assert.Equal(t, view.StatusEmpty, d.Status)
		assert.Equal(t, ui.EmptyNoData, d.Message)
		assert.Nil(t, d.Table)
	})

	t.Run("Ready", func(t *testing.T) {
		d := view.Render(view.State{User: student, Entries: []domain.LogEntry{entry("A", "x", 10, 1)}}, ui)

		assert.Equal(t, view.StatusReady, d.Status)
		assert.Empty(t, d.Message)
		require.NotNil(t, d.Table)
		require.NotNil(t, d.Projects)
		assert.Equal(t, "Study Log", d.Title)
	})
}

func TestBuildTable(t *testing.T) {
	entries := []domain.LogEntry{entry("Maths", "Proofs", 30, 2), entry("", "Reading", -4, 9)}

	t.Run("Without notes", func(t *testing.T) {
		table := view.BuildTable(entries, false)

		assert.Equal(t, []string{"Task", "Project", "Minutes", "Date"}, table.Columns)
		assert.Equal(t, "2 entries", table.CountLabel)
		assert.Equal(t, "02/05/2024", table.Rows[0].Date)
		assert.Equal(t, 0, table.Rows[1].Minutes, "dirty minutes render as zero")
		assert.Empty(t, table.Rows[0].Notes)
	})

	t.Run("With notes", func(t *testing.T) {
		table := view.BuildTable(entries, true)

		assert.Equal(t, []string{"Task", "Project", "Minutes", "Date", "Notes"}, table.Columns)
		assert.Equal(t, "note Proofs", table.Rows[0].Notes)
	})
}

func TestCountLabel(t *testing.T) {
	assert.Equal(t, "0 entries", view.CountLabel(0))
	assert.Equal(t, "1 entry", view.CountLabel(1))
	assert.Equal(t, "2 entries", view.CountLabel(2))
}

func TestBuildProjects(t *testing.T) {
	groupsOf := func(n int) []domain.ProjectGroup {
		entries := make([]domain.LogEntry, 0, n)
		for i := 0; i < n; i++ {
			entries = append(entries, entry(fmt.Sprintf("P%d", i), "t", 60, 1))
		}
		return domain.Aggregate(entries)
	}

	tests := []struct {
		projects     int
		expanded     bool
		wantLanes    int
		wantMore     int
		wantFirstKey string
	}{
		{projects: 0, expanded: false, wantLanes: 0, wantMore: 0},
		{projects: 1, expanded: false, wantLanes: 1, wantMore: 0, wantFirstKey: "P0"},
		{projects: 1, expanded: true, wantLanes: 1, wantMore: 0, wantFirstKey: "P0"},
		{projects: 3, expanded: false, wantLanes: 1, wantMore: 2, wantFirstKey: "P0"},
		{projects: 3, expanded: true, wantLanes: 3, wantMore: 0, wantFirstKey: "P0"},
		{projects: 8, expanded: false, wantLanes: 1, wantMore: 4, wantFirstKey: "P0"},
		{projects: 8, expanded: true, wantLanes: 5, wantMore: 0, wantFirstKey: "P0"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d projects expanded=%v", tt.projects, tt.expanded), func(t *testing.T) {
			pv := view.BuildProjects(groupsOf(tt.projects), tt.expanded)

			assert.Len(t, pv.Lanes, tt.wantLanes)
			assert.Equal(t, tt.wantMore, pv.MoreCount)
			assert.Equal(t, tt.expanded, pv.Expanded)
			if tt.wantLanes > 0 {
				assert.Equal(t, tt.wantFirstKey, pv.Lanes[0].Project)
			}
		})
	}
}

func TestLaneBars(t *testing.T) {
	groups := domain.Aggregate([]domain.LogEntry{
		entry("Physics", "Thermodynamics revision", 90, 1),
		entry("Physics", "Quiz", 5, 2),
		entry("Physics", "Quiz", 20, 3),
	})

	pv := view.BuildProjects(groups, false)
	require.Len(t, pv.Lanes, 1)
	lane := pv.Lanes[0]

	assert.Equal(t, "Physics", lane.Project)
	assert.Equal(t, 115, lane.TotalMinutes)
	assert.Equal(t, "115 min", lane.TotalLabel)
	require.Len(t, lane.Bars, 2)

	long := lane.Bars[0]
	assert.Equal(t, "Thermodynamics revision", long.Task)
	assert.Equal(t, "Thermodynam…", long.Label)
	assert.Equal(t, 45, long.HeightPx)
	assert.Equal(t, "90m", long.MinutesLabel)
	assert.Equal(t, 15, long.StepPx)

	short := lane.Bars[1]
	assert.Equal(t, "Quiz", short.Label)
	assert.Equal(t, 13, short.HeightPx, "25 minutes round half away from zero")
}

func TestBarHeight(t *testing.T) {
	assert.Equal(t, 8, view.BarHeight(0))
	assert.Equal(t, 8, view.BarHeight(15))
	assert.Equal(t, 8, view.BarHeight(16))
	assert.Equal(t, 9, view.BarHeight(17))
	assert.Equal(t, 30, view.BarHeight(60))
}

func TestTruncateLabel(t *testing.T) {
	assert.Equal(t, "exactly12chr", view.TruncateLabel("exactly12chr", 12))
	assert.Equal(t, "thirteen ch…", view.TruncateLabel("thirteen char", 12))
	assert.Equal(t, "ääääääääääää", view.TruncateLabel("ääääääääääää", 12), "counts runes, not bytes")
	assert.Equal(t, "ääääääääääa…", view.TruncateLabel("ääääääääääabc", 12))
}

func TestRender_DoesNotMutateState(t *testing.T) {
	entries := []domain.LogEntry{entry("B", "y", 5, 1), entry("A", "x", 10, 2)}
	snapshot := append([]domain.LogEntry(nil), entries...)

	first := view.Render(view.State{User: student, Entries: entries}, view.DefaultCopy())
	second := view.Render(view.State{User: student, Entries: entries}, view.DefaultCopy())

	assert.Equal(t, snapshot, entries)
	assert.Equal(t, first, second)
}
