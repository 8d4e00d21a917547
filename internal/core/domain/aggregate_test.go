package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_Grouping(t *testing.T) {
	entries := []LogEntry{
		{Project: "A", Task: "x", Minutes: 10},
		{Project: "A", Task: "x", Minutes: 5},
		{Project: "B", Task: "y", Minutes: 1},
	}

	groups := Aggregate(entries)

	require.Len(t, groups, 2)
	assert.Equal(t, "A", groups[0].Project)
	assert.Equal(t, "B", groups[1].Project)
	assert.Equal(t, []TaskTotal{{Task: "x", Minutes: 15}}, groups[0].Tasks)
	assert.Equal(t, 15, groups[0].TotalMinutes)
	assert.Equal(t, 1, groups[1].TotalMinutes)
}

func TestAggregate_DefaultKeys(t *testing.T) {
	groups := Aggregate([]LogEntry{
		{Project: "", Task: "", Minutes: 20},
		{Project: "   ", Task: " \t", Minutes: 5},
	})

	require.Len(t, groups, 1)
	assert.Equal(t, NoProjectLabel, groups[0].Project)
	assert.Equal(t, []TaskTotal{{Task: UntitledLabel, Minutes: 25}}, groups[0].Tasks)
}

func TestAggregate_TrimsKeys(t *testing.T) {
	groups := Aggregate([]LogEntry{
		{Project: "Maths ", Task: " Proofs", Minutes: 10},
		{Project: "Maths", Task: "Proofs", Minutes: 10},
	})

	require.Len(t, groups, 1)
	assert.Equal(t, "Maths", groups[0].Project)
	assert.Equal(t, 20, groups[0].Tasks[0].Minutes)
}

func TestAggregate_Ordering(t *testing.T) {
	entries := []LogEntry{
		{Project: "beta", Task: "t1", Minutes: 1},
		{Project: "Beta", Task: "t1", Minutes: 1},
		{Project: "alpha", Task: "first", Minutes: 10},
		{Project: "alpha", Task: "big", Minutes: 40},
		{Project: "alpha", Task: "second", Minutes: 10},
		{Project: "alpha", Task: "third", Minutes: 10},
		{Project: "Zeta", Task: "t", Minutes: 1},
	}

	groups := Aggregate(entries)

	projects := make([]string, len(groups))
	for i, g := range groups {
		projects[i] = g.Project
	}
	assert.Equal(t, []string{"Beta", "Zeta", "alpha", "beta"}, projects, "case-sensitive byte order")

	alpha := groups[2]
	assert.Equal(t, []TaskTotal{
		{Task: "big", Minutes: 40},
		{Task: "first", Minutes: 10},
		{Task: "second", Minutes: 10},
		{Task: "third", Minutes: 10},
	}, alpha.Tasks, "ties keep first-seen order")
}

func TestAggregate_DirtyMinutes(t *testing.T) {
	var entries []LogEntry
	raw := `[
		{"task":"a","project":"P","minutes":30},
		{"task":"a","project":"P","minutes":null},
		{"task":"a","project":"P","minutes":"12"},
		{"task":"b","project":"P","minutes":"lots"},
		{"task":"b","project":"P","minutes":-7},
		{"task":"b","project":"P"},
		{"task":"c","project":"P","minutes":4.9}
	]`
	require.NoError(t, json.Unmarshal([]byte(raw), &entries))

	groups := Aggregate(entries)

	require.Len(t, groups, 1)
	assert.Equal(t, []TaskTotal{
		{Task: "a", Minutes: 42},
		{Task: "c", Minutes: 4},
		{Task: "b", Minutes: 0},
	}, groups[0].Tasks)
	assert.Equal(t, 46, groups[0].TotalMinutes)
}

func TestAggregate_Empty(t *testing.T) {
	groups := Aggregate(nil)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)

	raw, err := json.Marshal(groups)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestAggregate_TotalsMatchInput(t *testing.T) {
	entries := make([]LogEntry, 0, 200)
	projects := []string{"", "Bio", "Chem", "bio"}
	tasks := []string{"", "read", "write", "Read"}
	inputTotal := 0
	for i := 0; i < 200; i++ {
		m := Minutes((i*37)%91 - 10)
		entries = append(entries, LogEntry{
			Project: projects[i%len(projects)],
			Task:    tasks[(i/3)%len(tasks)],
			Minutes: m,
		})
		inputTotal += m.Int()
	}

	groups := Aggregate(entries)

	sum := 0
	for _, g := range groups {
		taskSum := 0
		for _, task := range g.Tasks {
			taskSum += task.Minutes
		}
		assert.Equal(t, taskSum, g.TotalMinutes, "project %q", g.Project)
		sum += g.TotalMinutes
	}
	assert.Equal(t, inputTotal, sum)
	assert.Equal(t, inputTotal, TotalMinutes(groups))
}

func TestAggregate_PureAndIdempotent(t *testing.T) {
	entries := []LogEntry{
		{ID: "1", Project: " B ", Task: "y", Minutes: 3, Notes: "kept"},
		{ID: "2", Project: "A", Task: "", Minutes: 9},
		{ID: "3", Project: "A", Task: "x", Minutes: 9},
	}
	snapshot := make([]LogEntry, len(entries))
	copy(snapshot, entries)

	first := Aggregate(entries)
	second := Aggregate(entries)

	assert.Equal(t, snapshot, entries, "input must not be mutated")
	assert.Equal(t, first, second)

	first[0].Tasks[0].Minutes = 999
	assert.NotEqual(t, first, Aggregate(entries), "results share no state between calls")
}
