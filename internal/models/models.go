package models

// Status is an issue's lifecycle state, advanced by admin triage.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusSolved     Status = "solved"
)

// Valid reports whether s is one of the statuses the API accepts.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusSolved:
		return true
	}
	return false
}

// Issue is a reported civic problem as served by the CityFix API.
// Lat/Lng are pointers because the server stores them as nullable
// columns; an issue without both is not placeable on the map.
type Issue struct {
	ID            string   `json:"id"`
	UserID        *string  `json:"user_id"`
	ReporterName  *string  `json:"reporter_name"`
	Type          string   `json:"type"`
	Location      string   `json:"location"`
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
	Description   string   `json:"description"`
	Image         string   `json:"image,omitempty"`
	Date          string   `json:"date"`
	Status        Status   `json:"status"`
	PointsAwarded int      `json:"points_awarded"`
}

// HasCoordinates reports whether the issue can be placed on the map.
func (i *Issue) HasCoordinates() bool {
	return i.Lat != nil && i.Lng != nil
}

// User is a leaderboard or admin-listing entry. The report counters are
// maintained server-side and treated as read-only here.
type User struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email,omitempty"`
	Points        int    `json:"points"`
	TotalReports  int    `json:"total_reports"`
	SolvedReports int    `json:"solved_reports"`
	CreatedAt     string `json:"created_at,omitempty"`
}

// Reward is a catalog entry a user can redeem points against.
type Reward struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	PointsRequired int    `json:"points_required"`
	Icon           string `json:"icon"`
}

// RedeemedReward is a reward owned by a user, joined with the catalog
// fields by the server.
type RedeemedReward struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	RewardID       string `json:"reward_id"`
	RedeemedAt     string `json:"redeemed_at"`
	GivenByAdmin   int    `json:"given_by_admin"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	PointsRequired int    `json:"points_required"`
	Icon           string `json:"icon"`
}

// AdminStats are the aggregate counters shown on the admin dashboard.
type AdminStats struct {
	TotalIssues            int `json:"total_issues"`
	Pending                int `json:"pending"`
	InProgress             int `json:"in_progress"`
	Solved                 int `json:"solved"`
	TotalUsers             int `json:"total_users"`
	TotalPointsDistributed int `json:"total_points_distributed"`
}

// SessionUser is the locally remembered identity of the current user.
// It is the only record persisted across restarts.
type SessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Points   int    `json:"points"`
}
