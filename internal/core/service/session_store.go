package service

import (
	"sync"

	"github.com/rodnnnney/consensus25/internal/core/domain"
)

// SessionStore holds the latest applied snapshot per principal, standing in
// for the UI-owned context of the original flow. A refresh replaces the held
// snapshot wholesale; it is never patched field-by-field.
type SessionStore struct {
	mu        sync.RWMutex
	snapshots map[string]*domain.Snapshot
}

func NewSessionStore() *SessionStore {
	return &SessionStore{snapshots: make(map[string]*domain.Snapshot)}
}

// Apply installs a freshly built snapshot. Collections whose sub-fetch
// failed keep the previously held values, so a rate-limited refresh does not
// wipe already-loaded data. Concurrent applies are last-wins; out-of-order
// completion is tolerated by design.
func (st *SessionStore) Apply(snap *domain.Snapshot) *domain.Snapshot {
	st.mu.Lock()
	defer st.mu.Unlock()

	if prev, ok := st.snapshots[snap.Principal.ID]; ok {
		for _, f := range snap.Failures {
			switch f.Collection {
			case domain.CollectionRoster:
				snap.Roster = prev.Roster
			case domain.CollectionInvitations:
				snap.Invitations = prev.Invitations
			case domain.CollectionTransactions:
				snap.Transactions = prev.Transactions
			case domain.CollectionJobs:
				snap.Jobs = prev.Jobs
			case domain.CollectionDirectory:
				snap.Directory = prev.Directory
			}
		}
	}

	st.snapshots[snap.Principal.ID] = snap
	return snap
}

// Current returns the held snapshot for the principal, if any.
func (st *SessionStore) Current(principalID string) (*domain.Snapshot, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	snap, ok := st.snapshots[principalID]
	return snap, ok
}

// Clear drops the principal's snapshot on sign-out.
func (st *SessionStore) Clear(principalID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.snapshots, principalID)
}
