package views

// Surfaces are the thin adapters that apply computed view models to an
// actual rendering target. Builders in this package stay pure; nothing
// here touches the network or the state store.

// FeedSurface renders the issue feed.
type FeedSurface interface {
	RenderFeed(v FeedView)
}

// MapSurface renders issue markers. RenderMap must clear all previously
// placed markers before drawing the new set, so repeated renders never
// leak markers. InvalidateSize forces a size recalculation after the
// surface's layout settles.
type MapSurface interface {
	RenderMap(v MapView)
	InvalidateSize()
}

// LeaderboardSurface renders the ranked user list.
type LeaderboardSurface interface {
	RenderLeaderboard(v LeaderboardView)
}

// RewardsSurface renders the reward catalog and a user's redeemed
// rewards.
type RewardsSurface interface {
	RenderRewards(v RewardsView)
	RenderMyRewards(v MyRewardsView)
}

// AdminSurface renders the admin issue table, user table and stats.
type AdminSurface interface {
	RenderAdmin(v AdminView)
	RenderAdminUsers(v AdminUsersView)
}

// IdentitySurface renders the current-user widget. PointGain triggers
// the point-gain animation.
type IdentitySurface interface {
	RenderIdentity(v IdentityView)
	PointGain(added int)
}

// NavSurface shows exactly one view as active and highlights the
// matching navigation link.
type NavSurface interface {
	ActivateView(name string)
}
