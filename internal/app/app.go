package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cityfix-client/internal/gateway"
	"cityfix-client/internal/models"
	"cityfix-client/internal/notify"
	"cityfix-client/internal/session"
	"cityfix-client/internal/state"
	"cityfix-client/internal/views"

	"github.com/rs/zerolog/log"
)

// mapSettleDelay gives the map surface time to lay out before its size
// is recalculated and markers are redrawn.
const mapSettleDelay = 200 * time.Millisecond

// Surfaces groups the rendering targets the app drives.
type Surfaces struct {
	Feed        views.FeedSurface
	Map         views.MapSurface
	Picker      views.MapSurface
	Leaderboard views.LeaderboardSurface
	Rewards     views.RewardsSurface
	Admin       views.AdminSurface
	Identity    views.IdentitySurface
}

// App coordinates the state store, the gateway and the surfaces: push
// events and navigation both funnel through here, mutate the store,
// and re-render exactly the views the mutation touched.
type App struct {
	store    *state.Store
	gw       *gateway.Client
	sessions *session.Store
	notifier notify.Notifier
	surfaces Surfaces

	// lastStats backs admin table re-renders between dashboard
	// fetches, e.g. when a push event touches the table.
	statsMu   sync.Mutex
	lastStats models.AdminStats
}

// New wires the app together.
func New(store *state.Store, gw *gateway.Client, sessions *session.Store, notifier notify.Notifier, surfaces Surfaces) *App {
	return &App{
		store:    store,
		gw:       gw,
		sessions: sessions,
		notifier: notifier,
		surfaces: surfaces,
	}
}

// RestoreSession loads the persisted user, installs it, and refreshes
// its canonical record from the server on a best-effort basis.
func (a *App) RestoreSession(ctx context.Context) {
	user, err := a.sessions.Load()
	if err != nil {
		log.Warn().Err(err).Msg("Discarding unreadable session, starting anonymous")
	}
	a.store.SetSession(user)

	if user != nil {
		if fresh, err := a.gw.GetUser(ctx, user.ID); err != nil {
			log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to refresh session user")
		} else {
			user.Points = fresh.Points
			user.Username = fresh.Username
			a.store.SetSession(user)
			if err := a.sessions.Save(user); err != nil {
				log.Error().Err(err).Msg("Failed to persist refreshed session")
			}
		}
	}
	a.RenderIdentity()
}

// HandleEvent is the push-channel dispatcher: apply the event through
// the reducer, then perform the side effects its outcome names.
func (a *App) HandleEvent(ctx context.Context, ev state.Event) {
	out := a.store.Apply(ev)

	if out.Notice != "" {
		a.notifier.Info(out.Notice)
	}
	if out.AwardedPoints > 0 {
		a.notifier.Success(fmt.Sprintf("%d points awarded to the reporter", out.AwardedPoints))
	}
	if out.PersistSession {
		if err := a.sessions.Save(a.store.SessionUser()); err != nil {
			log.Error().Err(err).Msg("Failed to persist session")
		}
	}
	if out.Feed {
		a.RenderFeed()
	}
	if out.Map {
		a.RenderMap()
	}
	if out.Admin {
		a.renderAdminFromState()
	}
	if out.Identity {
		a.RenderIdentity()
	}
	if out.GainedPoints > 0 {
		a.surfaces.Identity.PointGain(out.GainedPoints)
	}
	if out.RefreshLeaderboard {
		if err := a.RefreshLeaderboard(ctx); err != nil {
			log.Error().Err(err).Msg("Leaderboard refresh after points update failed")
		}
	}
}

// RenderFeed re-renders the feed from current state.
func (a *App) RenderFeed() {
	a.surfaces.Feed.RenderFeed(views.BuildFeed(a.store.Snapshot()))
}

// RenderMap re-renders the issue map from current state.
func (a *App) RenderMap() {
	a.surfaces.Map.RenderMap(views.BuildMap(a.store.Snapshot()))
}

// RenderIdentity re-renders the current-user widget.
func (a *App) RenderIdentity() {
	a.surfaces.Identity.RenderIdentity(views.BuildIdentity(a.store.Snapshot()))
}

// SetFilter changes the feed filter and re-renders the feed.
func (a *App) SetFilter(f state.Filter) {
	a.store.SetFilter(f)
	a.RenderFeed()
}

// RefreshIssues refetches the issue collection and re-renders the feed
// and map. On failure prior state stays untouched and nothing renders.
func (a *App) RefreshIssues(ctx context.Context) error {
	issues, err := a.gw.ListIssues(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to refresh issues")
		return err
	}
	a.store.ReplaceIssues(issues)
	a.RenderFeed()
	a.RenderMap()
	return nil
}

// RefreshLeaderboard refetches the leaderboard and re-renders it.
func (a *App) RefreshLeaderboard(ctx context.Context) error {
	users, err := a.gw.Leaderboard(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to refresh leaderboard")
		return err
	}
	a.store.ReplaceUsers(users)
	a.surfaces.Leaderboard.RenderLeaderboard(views.BuildLeaderboard(a.store.Snapshot()))
	return nil
}

// RefreshRewards refetches the reward catalog and re-renders it.
func (a *App) RefreshRewards(ctx context.Context) error {
	rewards, err := a.gw.ListRewards(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to refresh rewards")
		return err
	}
	a.store.ReplaceRewards(rewards)
	a.surfaces.Rewards.RenderRewards(views.BuildRewards(a.store.Snapshot()))
	return nil
}

// RefreshMyRewards fetches and renders the session user's redeemed
// rewards. Anonymous sessions render the empty state without a fetch.
func (a *App) RefreshMyRewards(ctx context.Context) error {
	user := a.store.SessionUser()
	if user == nil {
		a.surfaces.Rewards.RenderMyRewards(views.BuildMyRewards(nil))
		return nil
	}
	redeemed, err := a.gw.UserRewards(ctx, user.ID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch redeemed rewards")
		return err
	}
	a.surfaces.Rewards.RenderMyRewards(views.BuildMyRewards(redeemed))
	return nil
}

// RefreshAdmin refetches stats, users and issues and renders the admin
// view. Each activation fetches fresh; push updates make cached admin
// data stale too quickly to be worth keeping. No-op without admin mode.
func (a *App) RefreshAdmin(ctx context.Context) error {
	if !a.store.Admin() {
		return nil
	}

	stats, err := a.gw.AdminStats(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch admin stats")
		return err
	}
	users, err := a.gw.AdminUsers(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch admin users")
		return err
	}
	issues, err := a.gw.ListIssues(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to refresh issues for admin view")
		return err
	}

	a.statsMu.Lock()
	a.lastStats = *stats
	a.statsMu.Unlock()

	a.store.ReplaceIssues(issues)
	a.surfaces.Admin.RenderAdmin(views.BuildAdmin(issues, *stats))
	a.surfaces.Admin.RenderAdminUsers(views.BuildAdminUsers(users))
	return nil
}

// renderAdminFromState redraws the admin issue table after a push
// event, reusing the last fetched stats.
func (a *App) renderAdminFromState() {
	a.statsMu.Lock()
	stats := a.lastStats
	a.statsMu.Unlock()
	a.surfaces.Admin.RenderAdmin(views.BuildAdmin(a.store.Snapshot().Issues, stats))
}

// AdminSetStatus transitions an issue's status through the gateway.
// Local state is not touched optimistically; the push channel (or the
// next admin refetch) delivers the authoritative update.
func (a *App) AdminSetStatus(ctx context.Context, issueID string, status models.Status) error {
	if !status.Valid() {
		a.notifier.Warning("Unknown status: " + string(status))
		return fmt.Errorf("invalid status %q", status)
	}
	awarded, err := a.gw.UpdateStatus(ctx, issueID, status)
	if err != nil {
		a.notifier.Danger(actionFailureMessage(err, "Status update failed"))
		return err
	}
	log.Info().Str("issue_id", issueID).Str("status", string(status)).Int("awarded", awarded).Msg("Status updated")
	a.notifier.Success("Status updated")
	return nil
}

// AdminDeleteIssue removes an issue through the gateway.
func (a *App) AdminDeleteIssue(ctx context.Context, issueID string) error {
	if err := a.gw.DeleteIssue(ctx, issueID); err != nil {
		a.notifier.Danger(actionFailureMessage(err, "Delete failed"))
		return err
	}
	a.notifier.Success("Issue deleted")
	return nil
}

// AdminGiveReward redeems a reward for a user through the gateway.
func (a *App) AdminGiveReward(ctx context.Context, userID, rewardID string) error {
	newPoints, err := a.gw.GiveReward(ctx, userID, rewardID)
	if err != nil {
		a.notifier.Danger(actionFailureMessage(err, "Could not give reward"))
		return err
	}
	a.notifier.Success(fmt.Sprintf("Reward given, user now has %d points", newPoints))
	return nil
}

func actionFailureMessage(err error, fallback string) string {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback + ". Please try again."
}

// ShowHome is the home entry action: a fresh issue fetch.
func (a *App) ShowHome(ctx context.Context) {
	_ = a.RefreshIssues(ctx)
}

// ShowMap defers a size recalculation so the surface can settle, then
// redraws markers.
func (a *App) ShowMap(ctx context.Context) {
	time.AfterFunc(mapSettleDelay, func() {
		a.surfaces.Map.InvalidateSize()
		a.RenderMap()
	})
}

// ShowReport recalculates the location-picker size.
func (a *App) ShowReport(ctx context.Context) {
	time.AfterFunc(mapSettleDelay, func() {
		a.surfaces.Picker.InvalidateSize()
	})
}

// ShowLeaderboard refetches the leaderboard and the reward catalog.
func (a *App) ShowLeaderboard(ctx context.Context) {
	_ = a.RefreshLeaderboard(ctx)
	_ = a.RefreshRewards(ctx)
}

// ShowRewards refetches the catalog and the user's redeemed rewards.
func (a *App) ShowRewards(ctx context.Context) {
	_ = a.RefreshRewards(ctx)
	_ = a.RefreshMyRewards(ctx)
}

// ShowAdmin renders the admin dashboard; gated on the admin flag.
func (a *App) ShowAdmin(ctx context.Context) {
	_ = a.RefreshAdmin(ctx)
}
