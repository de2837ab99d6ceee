package router

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures entry actions and nav activations in order.
type recorder struct {
	actions []string
	active  []string
}

func (r *recorder) ShowHome(context.Context)        { r.actions = append(r.actions, "home") }
func (r *recorder) ShowMap(context.Context)         { r.actions = append(r.actions, "map") }
func (r *recorder) ShowReport(context.Context)      { r.actions = append(r.actions, "report") }
func (r *recorder) ShowLeaderboard(context.Context) { r.actions = append(r.actions, "leaderboard") }
func (r *recorder) ShowRewards(context.Context)     { r.actions = append(r.actions, "rewards") }
func (r *recorder) ShowAdmin(context.Context)       { r.actions = append(r.actions, "admin") }

func (r *recorder) ActivateView(name string) { r.active = append(r.active, name) }

func TestResolve(t *testing.T) {
	tests := []struct {
		fragment string
		want     View
	}{
		{"home", ViewHome},
		{"#home", ViewHome},
		{"map", ViewMap},
		{"#leaderboard", ViewLeaderboard},
		{"rewards", ViewRewards},
		{"report", ViewReport},
		{"admin", ViewAdmin},
		{"", ViewHome},
		{"no-such-view", ViewHome},
	}
	for _, tt := range tests {
		t.Run(tt.fragment, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.fragment))
		})
	}
}

func TestNavigateRunsEntryActionAndActivates(t *testing.T) {
	rec := &recorder{}
	r := New(rec, rec)

	r.Navigate(context.Background(), "leaderboard")

	require.Equal(t, []string{"leaderboard"}, rec.actions)
	require.Equal(t, []string{"leaderboard"}, rec.active)
	assert.Equal(t, ViewLeaderboard, r.Current())
}

func TestNavigateUnknownFragmentFallsBackToHome(t *testing.T) {
	rec := &recorder{}
	r := New(rec, rec)

	r.Navigate(context.Background(), "#garbage-fragment")

	assert.Equal(t, []string{"home"}, rec.actions)
	assert.Equal(t, ViewHome, r.Current())
}

func TestNavigationSequence(t *testing.T) {
	rec := &recorder{}
	r := New(rec, rec)

	ctx := context.Background()
	r.Navigate(ctx, "home")
	r.Navigate(ctx, "map")
	r.Navigate(ctx, "admin")

	assert.Equal(t, []string{"home", "map", "admin"}, rec.actions)
	assert.Equal(t, []string{"home", "map", "admin"}, rec.active)
	assert.Equal(t, ViewAdmin, r.Current())
}
