package state

import (
	"testing"

	"cityfix-client/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.ReplaceIssues([]models.Issue{testIssue("a1", models.StatusPending)})
	s.SetSession(&models.SessionUser{ID: "u1", Username: "asha", Points: 5})

	snap := s.Snapshot()
	snap.Issues[0].Status = models.StatusSolved
	snap.Session.Points = 999

	// Mutating the snapshot must not touch the store.
	assert.Equal(t, models.StatusPending, s.Snapshot().Issues[0].Status)
	assert.Equal(t, 5, s.SessionUser().Points)
}

func TestReplaceIssuesCopiesInput(t *testing.T) {
	s := NewStore()
	input := []models.Issue{testIssue("a1", models.StatusPending)}
	s.ReplaceIssues(input)

	input[0].Status = models.StatusSolved
	assert.Equal(t, models.StatusPending, s.Snapshot().Issues[0].Status)
}

func TestFilterMatches(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		status models.Status
		want   bool
	}{
		{"all matches pending", FilterAll, models.StatusPending, true},
		{"all matches solved", FilterAll, models.StatusSolved, true},
		{"exact match", FilterSolved, models.StatusSolved, true},
		{"no match", FilterPending, models.StatusSolved, false},
		{"in-progress", FilterInProgress, models.StatusInProgress, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(tt.status))
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := NewStore()
	require.Nil(t, s.SessionUser())

	s.SetSession(&models.SessionUser{ID: "u1", Username: "asha"})
	s.SetAdmin(true)
	require.NotNil(t, s.SessionUser())
	assert.True(t, s.Admin())

	s.SetSession(nil)
	s.SetAdmin(false)
	assert.Nil(t, s.SessionUser())
	assert.False(t, s.Admin())
}

func TestDefaultFilterIsAll(t *testing.T) {
	assert.Equal(t, FilterAll, NewStore().Filter())
}
