package views

import (
	"cityfix-client/internal/models"
)

// AdminRow is one issue in the admin table with its inline actions.
type AdminRow struct {
	Issue models.Issue
	// Transitions are the statuses the admin can move this issue to.
	// Backward transitions are allowed; the lifecycle has no enforced
	// direction.
	Transitions []models.Status
}

// AdminView is the computed admin dashboard: stats plus the issue
// table.
type AdminView struct {
	Stats models.AdminStats
	Rows  []AdminRow
	Empty string
}

// AdminUsersView is the computed admin user table.
type AdminUsersView struct {
	Users []models.User
	Empty string
}

var allStatuses = []models.Status{models.StatusPending, models.StatusInProgress, models.StatusSolved}

// BuildAdmin computes the admin dashboard from a fresh issue listing
// and stats fetch. Admin views are always rebuilt from a fetch on
// activation, never cached across tab switches.
func BuildAdmin(issues []models.Issue, stats models.AdminStats) AdminView {
	v := AdminView{Stats: stats}
	for _, issue := range issues {
		row := AdminRow{Issue: issue}
		for _, s := range allStatuses {
			if s != issue.Status {
				row.Transitions = append(row.Transitions, s)
			}
		}
		v.Rows = append(v.Rows, row)
	}
	if len(v.Rows) == 0 {
		v.Empty = "No issues reported."
	}
	return v
}

// BuildAdminUsers computes the admin user table.
func BuildAdminUsers(users []models.User) AdminUsersView {
	v := AdminUsersView{Users: users}
	if len(users) == 0 {
		v.Empty = "No registered users."
	}
	return v
}
