package views

import (
	"cityfix-client/internal/models"
	"cityfix-client/internal/state"
)

// FeedView is the computed feed: aggregate counters over the full
// collection plus the filtered display subset.
type FeedView struct {
	Total      int
	InProgress int
	Solved     int
	Visible    []models.Issue
	Filter     state.Filter
	Empty      string
}

const feedEmptyMessage = "No issues to show. Be the first to report one!"

// BuildFeed computes the feed view. The counters always cover the full
// collection regardless of the active filter; only Visible is filtered.
func BuildFeed(snap state.Snapshot) FeedView {
	v := FeedView{
		Total:  len(snap.Issues),
		Filter: snap.Filter,
	}
	for i := range snap.Issues {
		switch snap.Issues[i].Status {
		case models.StatusInProgress:
			v.InProgress++
		case models.StatusSolved:
			v.Solved++
		}
		if snap.Filter.Matches(snap.Issues[i].Status) {
			v.Visible = append(v.Visible, snap.Issues[i])
		}
	}
	if len(v.Visible) == 0 {
		v.Empty = feedEmptyMessage
	}
	return v
}
