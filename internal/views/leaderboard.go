package views

import (
	"cityfix-client/internal/state"
)

// LeaderboardRow is one ranked user. Medal is set for ranks 1-3 and
// IsSessionUser marks the row to highlight.
type LeaderboardRow struct {
	Rank          int
	Medal         string
	Username      string
	Points        int
	TotalReports  int
	SolvedReports int
	IsSessionUser bool
}

// LeaderboardView is the computed leaderboard.
type LeaderboardView struct {
	Rows  []LeaderboardRow
	Empty string
}

var medals = [...]string{"🥇", "🥈", "🥉"}

// BuildLeaderboard ranks users by their list order; the server already
// sorts by points descending.
func BuildLeaderboard(snap state.Snapshot) LeaderboardView {
	var v LeaderboardView
	for i, u := range snap.Users {
		row := LeaderboardRow{
			Rank:          i + 1,
			Username:      u.Username,
			Points:        u.Points,
			TotalReports:  u.TotalReports,
			SolvedReports: u.SolvedReports,
		}
		if i < len(medals) {
			row.Medal = medals[i]
		}
		if snap.Session != nil && snap.Session.ID == u.ID {
			row.IsSessionUser = true
		}
		v.Rows = append(v.Rows, row)
	}
	if len(v.Rows) == 0 {
		v.Empty = "No reporters on the board yet."
	}
	return v
}
