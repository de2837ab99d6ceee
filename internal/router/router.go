package router

import (
	"context"
	"strings"

	"cityfix-client/internal/views"

	"github.com/rs/zerolog/log"
)

// View is a navigable view state.
type View string

const (
	ViewHome        View = "home"
	ViewMap         View = "map"
	ViewReport      View = "report"
	ViewLeaderboard View = "leaderboard"
	ViewRewards     View = "rewards"
	ViewAdmin       View = "admin"
)

// Actions are the per-view entry routines run after a transition.
type Actions interface {
	ShowHome(ctx context.Context)
	ShowMap(ctx context.Context)
	ShowReport(ctx context.Context)
	ShowLeaderboard(ctx context.Context)
	ShowRewards(ctx context.Context)
	ShowAdmin(ctx context.Context)
}

// Router maps a navigation fragment to the active view and runs that
// view's entry action.
type Router struct {
	actions Actions
	nav     views.NavSurface
	current View
}

// New creates a router. The initial page load must still call Navigate
// once with the startup fragment.
func New(actions Actions, nav views.NavSurface) *Router {
	return &Router{actions: actions, nav: nav}
}

// Resolve maps a fragment string onto a view; anything unrecognized
// falls back to home.
func Resolve(fragment string) View {
	switch View(strings.TrimPrefix(fragment, "#")) {
	case ViewMap:
		return ViewMap
	case ViewReport:
		return ViewReport
	case ViewLeaderboard:
		return ViewLeaderboard
	case ViewRewards:
		return ViewRewards
	case ViewAdmin:
		return ViewAdmin
	}
	return ViewHome
}

// Navigate transitions to the view named by the fragment: deactivate
// everything else, activate the target, then run its entry action.
func (r *Router) Navigate(ctx context.Context, fragment string) {
	view := Resolve(fragment)
	r.current = view
	r.nav.ActivateView(string(view))
	log.Debug().Str("view", string(view)).Msg("Navigated")

	switch view {
	case ViewHome:
		r.actions.ShowHome(ctx)
	case ViewMap:
		r.actions.ShowMap(ctx)
	case ViewReport:
		r.actions.ShowReport(ctx)
	case ViewLeaderboard:
		r.actions.ShowLeaderboard(ctx)
	case ViewRewards:
		r.actions.ShowRewards(ctx)
	case ViewAdmin:
		r.actions.ShowAdmin(ctx)
	}
}

// Current returns the active view.
func (r *Router) Current() View {
	return r.current
}
