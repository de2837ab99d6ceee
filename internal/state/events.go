package state

import (
	"cityfix-client/internal/models"
)

// Event is an inbound push-channel event. The push listener decodes
// wire frames into these and hands them, in delivery order, to
// Store.Apply. Keeping the reactions in one reducer makes ordering and
// idempotence testable without a live connection.
type Event interface {
	eventName() string
}

// Connected signals that the push channel came up.
type Connected struct{}

// Disconnected signals that the push channel went down. State is left
// as-is; it only means freshness is degraded until reconnect.
type Disconnected struct{}

// IssueCreated carries a full issue record pushed by the server.
type IssueCreated struct {
	Issue models.Issue
}

// StatusUpdated reports an admin status transition on an issue.
type StatusUpdated struct {
	IssueID       string        `json:"issue_id"`
	Status        models.Status `json:"status"`
	PointsAwarded int           `json:"points_awarded"`
}

// IssueDeleted reports an issue removed by an admin.
type IssueDeleted struct {
	IssueID string `json:"issue_id"`
}

// PointsUpdated reports a change to a user's point balance.
type PointsUpdated struct {
	UserID string `json:"user_id"`
	Points int    `json:"points"`
	Added  int    `json:"added"`
}

func (Connected) eventName() string     { return "connect" }
func (Disconnected) eventName() string  { return "disconnect" }
func (IssueCreated) eventName() string  { return "new_issue" }
func (StatusUpdated) eventName() string { return "status_updated" }
func (IssueDeleted) eventName() string  { return "issue_deleted" }
func (PointsUpdated) eventName() string { return "points_updated" }

// Outcome tells the caller which side effects an applied event
// requires. The reducer itself only touches the store; rendering,
// persistence and refetches stay with the caller so Apply remains a
// pure (state, event) -> (state, effects) step.
type Outcome struct {
	// Views that must re-render from the mutated state.
	Feed     bool
	Map      bool
	Admin    bool
	Identity bool

	// RefreshLeaderboard asks for a fresh leaderboard fetch.
	RefreshLeaderboard bool

	// PersistSession asks for the session user to be re-persisted.
	PersistSession bool

	// AwardedPoints is a status transition's point grant, surfaced as a
	// notice when positive.
	AwardedPoints int

	// GainedPoints is the session user's own balance gain, used to
	// trigger the point-gain animation when positive.
	GainedPoints int

	// Notice is a transient informational message, e.g. on connect.
	Notice string

	// Applied is false when the event was a no-op: a redelivery already
	// reflected in state, or a reference to an unknown issue id.
	Applied bool
}

// Apply merges one push event into the store and reports the required
// side effects. Reapplying a delivered event is a no-op, and events
// referencing ids not in local state are dropped silently; both are
// benign races between the push channel and wholesale refetches.
func (s *Store) Apply(ev Event) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch e := ev.(type) {
	case Connected:
		return Outcome{Applied: true, Notice: "Connected to live updates"}

	case Disconnected:
		return Outcome{Applied: true}

	case IssueCreated:
		return s.applyIssueCreated(e)

	case StatusUpdated:
		return s.applyStatusUpdated(e)

	case IssueDeleted:
		return s.applyIssueDeleted(e)

	case PointsUpdated:
		return s.applyPointsUpdated(e)
	}
	return Outcome{}
}

func (s *Store) applyIssueCreated(e IssueCreated) Outcome {
	for i := range s.issues {
		if s.issues[i].ID != e.Issue.ID {
			continue
		}
		// Redelivered create: update in place rather than duplicating
		// the entry. Identical content is a pure no-op.
		if issueEqual(&s.issues[i], &e.Issue) {
			return Outcome{}
		}
		s.issues[i] = e.Issue
		return Outcome{Applied: true, Feed: true, Map: true, Admin: s.admin}
	}
	s.issues = append([]models.Issue{e.Issue}, s.issues...)
	return Outcome{Applied: true, Feed: true, Map: true, Admin: s.admin}
}

func (s *Store) applyStatusUpdated(e StatusUpdated) Outcome {
	for i := range s.issues {
		if s.issues[i].ID != e.IssueID {
			continue
		}
		if s.issues[i].Status == e.Status {
			// Already reflected; do not re-add the point grant.
			return Outcome{}
		}
		s.issues[i].Status = e.Status
		s.issues[i].PointsAwarded += e.PointsAwarded
		return Outcome{
			Applied:       true,
			Feed:          true,
			Map:           true,
			Admin:         s.admin,
			AwardedPoints: e.PointsAwarded,
		}
	}
	// Unknown id: a refetch raced the event. Drop it.
	return Outcome{}
}

func (s *Store) applyIssueDeleted(e IssueDeleted) Outcome {
	for i := range s.issues {
		if s.issues[i].ID == e.IssueID {
			s.issues = append(s.issues[:i], s.issues[i+1:]...)
			return Outcome{Applied: true, Feed: true, Map: true, Admin: s.admin}
		}
	}
	return Outcome{}
}

func (s *Store) applyPointsUpdated(e PointsUpdated) Outcome {
	// The leaderboard is always stale after a points change, whoever
	// earned them.
	out := Outcome{Applied: true, RefreshLeaderboard: true}

	if s.session == nil || s.session.ID != e.UserID {
		return out
	}
	if s.session.Points == e.Points {
		return out
	}
	s.session.Points = e.Points
	out.Identity = true
	out.PersistSession = true
	out.GainedPoints = e.Added
	return out
}

func issueEqual(a, b *models.Issue) bool {
	if a.ID != b.ID || a.Type != b.Type || a.Location != b.Location ||
		a.Description != b.Description || a.Image != b.Image ||
		a.Date != b.Date || a.Status != b.Status ||
		a.PointsAwarded != b.PointsAwarded {
		return false
	}
	return floatPtrEqual(a.Lat, b.Lat) && floatPtrEqual(a.Lng, b.Lng) &&
		strPtrEqual(a.UserID, b.UserID) && strPtrEqual(a.ReporterName, b.ReporterName)
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
