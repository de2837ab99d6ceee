// Package ui is the console rendering surface: a thin adapter that
// prints computed view models. It holds no state of its own and is not
// unit-tested; everything interesting happens in the view builders.
package ui

import (
	"fmt"
	"io"
	"strings"

	"cityfix-client/internal/notify"
	"cityfix-client/internal/views"
)

// Console renders every view to one writer.
type Console struct {
	out io.Writer
}

// NewConsole creates a console surface.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) RenderFeed(v views.FeedView) {
	fmt.Fprintf(c.out, "\n== Issues (%s) - total %d, in progress %d, solved %d ==\n",
		v.Filter, v.Total, v.InProgress, v.Solved)
	if v.Empty != "" {
		fmt.Fprintln(c.out, v.Empty)
		return
	}
	for _, issue := range v.Visible {
		reporter := "anonymous"
		if issue.ReporterName != nil {
			reporter = *issue.ReporterName
		}
		fmt.Fprintf(c.out, "[%-11s] %s at %s - %s (by %s)\n",
			issue.Status, issue.Type, issue.Location, issue.Description, reporter)
	}
}

func (c *Console) RenderMap(v views.MapView) {
	if v.KeepView {
		fmt.Fprintln(c.out, "\n== Map: no placeable issues, keeping view ==")
		return
	}
	fmt.Fprintf(c.out, "\n== Map: %d markers, bounds (%.4f,%.4f)..(%.4f,%.4f) ==\n",
		len(v.Markers), v.Bounds.MinLat, v.Bounds.MinLng, v.Bounds.MaxLat, v.Bounds.MaxLng)
	for _, m := range v.Markers {
		fmt.Fprintf(c.out, "  %s pin (%.4f, %.4f): %s\n", m.Color, m.Lat, m.Lng, m.Popup)
	}
}

func (c *Console) InvalidateSize() {}

func (c *Console) RenderLeaderboard(v views.LeaderboardView) {
	fmt.Fprintln(c.out, "\n== Leaderboard ==")
	if v.Empty != "" {
		fmt.Fprintln(c.out, v.Empty)
		return
	}
	for _, row := range v.Rows {
		marker := " "
		if row.IsSessionUser {
			marker = "*"
		}
		fmt.Fprintf(c.out, "%s%2d %-2s %-20s %5d pts (%d reports, %d solved)\n",
			marker, row.Rank, row.Medal, row.Username, row.Points, row.TotalReports, row.SolvedReports)
	}
}

func (c *Console) RenderRewards(v views.RewardsView) {
	fmt.Fprintln(c.out, "\n== Rewards ==")
	if v.Empty != "" {
		fmt.Fprintln(c.out, v.Empty)
		return
	}
	for _, card := range v.Cards {
		note := ""
		if card.Affordable {
			note = " (redeemable)"
		}
		fmt.Fprintf(c.out, "%s %s - %s, %d pts%s\n",
			card.Reward.Icon, card.Reward.Name, card.Reward.Description, card.Reward.PointsRequired, note)
	}
}

func (c *Console) RenderMyRewards(v views.MyRewardsView) {
	fmt.Fprintln(c.out, "\n== My rewards ==")
	if v.Empty != "" {
		fmt.Fprintln(c.out, v.Empty)
		return
	}
	for _, r := range v.Rewards {
		fmt.Fprintf(c.out, "%s %s - redeemed %s\n", r.Icon, r.Name, r.RedeemedAt)
	}
}

func (c *Console) RenderAdmin(v views.AdminView) {
	fmt.Fprintf(c.out, "\n== Admin: %d issues (%d pending, %d in progress, %d solved), %d users, %d pts distributed ==\n",
		v.Stats.TotalIssues, v.Stats.Pending, v.Stats.InProgress, v.Stats.Solved,
		v.Stats.TotalUsers, v.Stats.TotalPointsDistributed)
	if v.Empty != "" {
		fmt.Fprintln(c.out, v.Empty)
		return
	}
	for _, row := range v.Rows {
		transitions := make([]string, len(row.Transitions))
		for i, t := range row.Transitions {
			transitions[i] = string(t)
		}
		fmt.Fprintf(c.out, "%s [%s] %s at %s - can set: %s, delete\n",
			row.Issue.ID, row.Issue.Status, row.Issue.Type, row.Issue.Location,
			strings.Join(transitions, ", "))
	}
}

func (c *Console) RenderAdminUsers(v views.AdminUsersView) {
	fmt.Fprintln(c.out, "\n== Admin: users ==")
	if v.Empty != "" {
		fmt.Fprintln(c.out, v.Empty)
		return
	}
	for _, u := range v.Users {
		fmt.Fprintf(c.out, "%s %-20s %-30s %5d pts, %d reports\n",
			u.ID, u.Username, u.Email, u.Points, u.TotalReports)
	}
}

func (c *Console) RenderIdentity(v views.IdentityView) {
	if !v.LoggedIn {
		fmt.Fprintln(c.out, "\n-- browsing anonymously --")
		return
	}
	admin := ""
	if v.Admin {
		admin = " [admin]"
	}
	fmt.Fprintf(c.out, "\n-- %s, %d pts%s --\n", v.Username, v.Points, admin)
}

func (c *Console) PointGain(added int) {
	fmt.Fprintf(c.out, "  +%d points!\n", added)
}

func (c *Console) ActivateView(name string) {
	fmt.Fprintf(c.out, "\n>>> %s\n", name)
}

func (c *Console) ShowToast(t notify.Toast) {
	fmt.Fprintf(c.out, "(%s) %s\n", t.Level, t.Message)
}
