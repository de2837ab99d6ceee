package views

import (
	"cityfix-client/internal/state"
)

// IdentityView is the current-user widget: who is logged in and their
// live point balance.
type IdentityView struct {
	LoggedIn bool
	Username string
	Points   int
	Admin    bool
}

// BuildIdentity computes the identity widget from the session.
func BuildIdentity(snap state.Snapshot) IdentityView {
	v := IdentityView{Admin: snap.Admin}
	if snap.Session != nil {
		v.LoggedIn = true
		v.Username = snap.Session.Username
		v.Points = snap.Session.Points
	}
	return v
}
