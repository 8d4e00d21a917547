// Package view turns the signed-in user's log into the data a client needs
// to draw the dashboard. Everything here is a pure function of State.
package view

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/comitanigiacomo/studylog-engine/internal/core/domain"
)

type Status string

const (
	StatusSignedOut Status = "signed_out"
	StatusEmpty     Status = "empty"
	StatusError     Status = "error"
	StatusReady     Status = "ready"
)

const (
	pxPerMinute     = 0.5
	minBarHeight    = 8
	minGridStep     = 6
	gridStepMinutes = 30
	labelMaxRunes   = 12
	maxLanes        = 5
)

// Copy holds the user-facing strings of the dashboard.
type Copy struct {
	Title          string `toml:"title"`
	SignInLabel    string `toml:"sign_in_label"`
	SignOutLabel   string `toml:"sign_out_label"`
	EmptySignedOut string `toml:"empty_signed_out"`
	EmptyNoData    string `toml:"empty_no_data"`
	LoadFailed     string `toml:"load_failed"`
}

func DefaultCopy() Copy {
	return Copy{
		Title:          "Study Log",
		SignInLabel:    "Sign in with Google",
		SignOutLabel:   "Sign out",
		EmptySignedOut: "Sign in to load your log…",
		EmptyNoData:    "No entries yet. Start your first session!",
		LoadFailed:     "Could not load your log. Please try again.",
	}
}

// State is everything the dashboard depends on. A nil User means signed out.
type State struct {
	User             *domain.User
	Entries          []domain.LogEntry
	ShowNotes        bool
	ExpandedProjects bool
	LoadErr          error
}

type Dashboard struct {
	Title       string       `json:"title"`
	Status      Status       `json:"status"`
	Message     string       `json:"message,omitempty"`
	SignedInAs  string       `json:"signed_in_as,omitempty"`
	ActionLabel string       `json:"action_label"`
	Table       *Table       `json:"table,omitempty"`
	Projects    *ProjectView `json:"projects,omitempty"`
}

type Table struct {
	Columns    []string `json:"columns"`
	Rows       []Row    `json:"rows"`
	CountLabel string   `json:"count_label"`
}

type Row struct {
	ID      string `json:"id"`
	Task    string `json:"task"`
	Project string `json:"project"`
	Minutes int    `json:"minutes"`
	Date    string `json:"date"`
	Notes   string `json:"notes,omitempty"`
}

type ProjectView struct {
	Lanes     []Lane `json:"lanes"`
	MoreCount int    `json:"more_count"`
	Expanded  bool   `json:"expanded"`
}

type Lane struct {
	Project      string `json:"project"`
	TotalMinutes int    `json:"total_minutes"`
	TotalLabel   string `json:"total_label"`
	Bars         []Bar  `json:"bars"`
}

type Bar struct {
	Task         string `json:"task"`
	Label        string `json:"label"`
	Minutes      int    `json:"minutes"`
	MinutesLabel string `json:"minutes_label"`
	HeightPx     int    `json:"height_px"`
	StepPx       int    `json:"step_px"`
}

func Render(state State, ui Copy) Dashboard {
	d := Dashboard{Title: ui.Title}

	if state.User == nil {
		d.Status = StatusSignedOut
		d.Message = ui.EmptySignedOut
		d.ActionLabel = ui.SignInLabel
		return d
	}

	d.SignedInAs = state.User.Email
	d.ActionLabel = ui.SignOutLabel

	switch {
	case state.LoadErr != nil:
		d.Status = StatusError
		d.Message = ui.LoadFailed
	case len(state.Entries) == 0:
		d.Status = StatusEmpty
		d.Message = ui.EmptyNoData
	default:
		d.Status = StatusReady
		table := BuildTable(state.Entries, state.ShowNotes)
		projects := BuildProjects(domain.Aggregate(state.Entries), state.ExpandedProjects)
		d.Table = &table
		d.Projects = &projects
	}

	return d
}

func BuildTable(entries []domain.LogEntry, showNotes bool) Table {
	columns := []string{"Task", "Project", "Minutes", "Date"}
	if showNotes {
		columns = append(columns, "Notes")
	}

	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		row := Row{
			ID:      e.ID,
			Task:    e.Task,
			Project: e.Project,
			Minutes: e.Minutes.Int(),
			Date:    e.Date.Display(),
		}
		if showNotes {
			row.Notes = e.Notes
		}
		rows = append(rows, row)
	}

	return Table{Columns: columns, Rows: rows, CountLabel: CountLabel(len(entries))}
}

func CountLabel(n int) string {
	if n == 1 {
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", n)
}

// BuildProjects lays out one lane per group. Collapsed, only the first lane
// is shown and MoreCount says how many expanding would add.
func BuildProjects(groups []domain.ProjectGroup, expanded bool) ProjectView {
	view := ProjectView{Lanes: []Lane{}, Expanded: expanded}
	if len(groups) == 0 {
		return view
	}

	extra := min(maxLanes-1, len(groups)-1)
	shown := 1
	if expanded {
		shown += extra
	} else {
		view.MoreCount = extra
	}

	for _, g := range groups[:shown] {
		view.Lanes = append(view.Lanes, buildLane(g))
	}
	return view
}

func buildLane(g domain.ProjectGroup) Lane {
	step := GridStep()
	bars := make([]Bar, 0, len(g.Tasks))
	for _, t := range g.Tasks {
		bars = append(bars, Bar{
			Task:         t.Task,
			Label:        TruncateLabel(t.Task, labelMaxRunes),
			Minutes:      t.Minutes,
			MinutesLabel: fmt.Sprintf("%dm", t.Minutes),
			HeightPx:     BarHeight(t.Minutes),
			StepPx:       step,
		})
	}

	return Lane{
		Project:      g.Project,
		TotalMinutes: g.TotalMinutes,
		TotalLabel:   fmt.Sprintf("%d min", g.TotalMinutes),
		Bars:         bars,
	}
}

func BarHeight(minutes int) int {
	return max(minBarHeight, int(math.Round(float64(minutes)*pxPerMinute)))
}

// GridStep is the pixel spacing of the half-hour grid lines.
func GridStep() int {
	return max(minGridStep, int(math.Round(gridStepMinutes*pxPerMinute)))
}

// TruncateLabel shortens s to n runes, the last one being an ellipsis.
func TruncateLabel(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}
