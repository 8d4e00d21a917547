package domain

type Summary struct {
	From          string         `json:"from,omitempty"`
	To            string         `json:"to,omitempty"`
	TotalEntries  int            `json:"total_entries"`
	TotalMinutes  int            `json:"total_minutes"`
	CurrentStreak int            `json:"current_streak"`
	LongestStreak int            `json:"longest_streak"`
	Projects      []ProjectGroup `json:"projects"`
}

type SummaryInput struct {
	UserID string
	From   Date
	To     Date
}
