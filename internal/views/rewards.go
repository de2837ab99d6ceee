package views

import (
	"cityfix-client/internal/models"
	"cityfix-client/internal/state"
)

// RewardCard is one catalog entry with its redemption eligibility for
// the current session.
type RewardCard struct {
	Reward     models.Reward
	Affordable bool
}

// RewardsView is the computed reward catalog.
type RewardsView struct {
	Cards []RewardCard
	Empty string
}

// MyRewardsView is a user's redeemed-rewards listing.
type MyRewardsView struct {
	Rewards []models.RedeemedReward
	Empty   string
}

// BuildRewards marks each catalog entry affordable when the session
// user's balance meets its threshold. Anonymous sessions afford
// nothing.
func BuildRewards(snap state.Snapshot) RewardsView {
	points := 0
	if snap.Session != nil {
		points = snap.Session.Points
	}

	var v RewardsView
	for _, r := range snap.Rewards {
		v.Cards = append(v.Cards, RewardCard{
			Reward:     r,
			Affordable: snap.Session != nil && points >= r.PointsRequired,
		})
	}
	if len(v.Cards) == 0 {
		v.Empty = "No rewards available right now."
	}
	return v
}

// BuildMyRewards wraps a redeemed-rewards listing with its empty state.
func BuildMyRewards(redeemed []models.RedeemedReward) MyRewardsView {
	v := MyRewardsView{Rewards: redeemed}
	if len(redeemed) == 0 {
		v.Empty = "You haven't redeemed any rewards yet."
	}
	return v
}
