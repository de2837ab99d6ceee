package views

import (
	"testing"

	"cityfix-client/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAdminTransitions(t *testing.T) {
	issues := []models.Issue{
		issue("a", models.StatusPending),
		issue("b", models.StatusSolved),
	}
	stats := models.AdminStats{TotalIssues: 2, Pending: 1, Solved: 1}

	v := BuildAdmin(issues, stats)
	require.Len(t, v.Rows, 2)
	assert.Equal(t, stats, v.Stats)

	// Every status but the current one is offered, backward included.
	assert.Equal(t, []models.Status{models.StatusInProgress, models.StatusSolved}, v.Rows[0].Transitions)
	assert.Equal(t, []models.Status{models.StatusPending, models.StatusInProgress}, v.Rows[1].Transitions)
}

func TestBuildAdminEmpty(t *testing.T) {
	v := BuildAdmin(nil, models.AdminStats{})
	assert.Empty(t, v.Rows)
	assert.NotEmpty(t, v.Empty)
}

func TestBuildAdminUsers(t *testing.T) {
	v := BuildAdminUsers([]models.User{{ID: "u1", Username: "asha"}})
	assert.Len(t, v.Users, 1)
	assert.Empty(t, v.Empty)

	v = BuildAdminUsers(nil)
	assert.NotEmpty(t, v.Empty)
}

func TestBuildIdentity(t *testing.T) {
	v := BuildIdentity(snapshotWith(nil, "all"))
	assert.False(t, v.LoggedIn)

	snap := snapshotWith(nil, "all")
	snap.Session = &models.SessionUser{ID: "u1", Username: "asha", Points: 42}
	snap.Admin = true
	v = BuildIdentity(snap)
	assert.True(t, v.LoggedIn)
	assert.Equal(t, "asha", v.Username)
	assert.Equal(t, 42, v.Points)
	assert.True(t, v.Admin)
}
