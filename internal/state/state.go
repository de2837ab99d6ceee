package state

import (
	"sync"

	"cityfix-client/internal/models"
)

// Filter selects which issues the feed displays.
type Filter string

const (
	FilterAll        Filter = "all"
	FilterPending    Filter = Filter(models.StatusPending)
	FilterInProgress Filter = Filter(models.StatusInProgress)
	FilterSolved     Filter = Filter(models.StatusSolved)
)

// Matches reports whether an issue with the given status is visible
// under the filter.
func (f Filter) Matches(s models.Status) bool {
	return f == FilterAll || Filter(s) == f
}

// Store is the single writable snapshot of client state: the cached
// issue, user and reward collections, the current session and the
// active feed filter. All mutations are synchronous; renderers only
// ever see copies taken via Snapshot, so they cannot diverge from or
// corrupt the live collections.
type Store struct {
	mu      sync.RWMutex
	issues  []models.Issue
	users   []models.User
	rewards []models.Reward
	session *models.SessionUser
	admin   bool
	filter  Filter
}

// NewStore creates an empty store with the unfiltered feed active.
func NewStore() *Store {
	return &Store{filter: FilterAll}
}

// Snapshot is a read-only copy of the store handed to view builders.
type Snapshot struct {
	Issues  []models.Issue
	Users   []models.User
	Rewards []models.Reward
	Session *models.SessionUser
	Admin   bool
	Filter  Filter
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Issues:  make([]models.Issue, len(s.issues)),
		Users:   make([]models.User, len(s.users)),
		Rewards: make([]models.Reward, len(s.rewards)),
		Admin:   s.admin,
		Filter:  s.filter,
	}
	copy(snap.Issues, s.issues)
	copy(snap.Users, s.users)
	copy(snap.Rewards, s.rewards)
	if s.session != nil {
		u := *s.session
		snap.Session = &u
	}
	return snap
}

// ReplaceIssues overwrites the issue collection wholesale. A refetch is
// authoritative: no merge with what was there before. Callers must not
// call this on a failed fetch; prior state stays untouched.
func (s *Store) ReplaceIssues(issues []models.Issue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issues = make([]models.Issue, len(issues))
	copy(s.issues, issues)
}

// ReplaceUsers overwrites the leaderboard collection wholesale,
// preserving the server's score-descending order.
func (s *Store) ReplaceUsers(users []models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make([]models.User, len(users))
	copy(s.users, users)
}

// ReplaceRewards overwrites the reward catalog wholesale.
func (s *Store) ReplaceRewards(rewards []models.Reward) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rewards = make([]models.Reward, len(rewards))
	copy(s.rewards, rewards)
}

// SetFilter changes the active feed filter.
func (s *Store) SetFilter(f Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

// Filter returns the active feed filter.
func (s *Store) Filter() Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// SetSession installs the current user, or clears it when nil.
func (s *Store) SetSession(u *models.SessionUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u == nil {
		s.session = nil
		return
	}
	copied := *u
	s.session = &copied
}

// SessionUser returns a copy of the current user, or nil when the
// session is anonymous.
func (s *Store) SessionUser() *models.SessionUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	u := *s.session
	return &u
}

// SetAdmin flips the session-local admin flag. The flag is never
// persisted; it grants UI affordances only.
func (s *Store) SetAdmin(admin bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admin = admin
}

// Admin reports whether admin mode is active for this session.
func (s *Store) Admin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admin
}
