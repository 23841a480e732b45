package ports

import (
	"context"

	"github.com/rodnnnney/consensus25/internal/core/domain"
)

// Session is the output of the identity resolver: the verified principal and
// its role row, which is nil until onboarding completes.
type Session struct {
	Principal domain.Principal
	Role      *domain.RoleRecord
}

// NeedsOnboarding reports whether the principal has no role record yet.
func (s *Session) NeedsOnboarding() bool { return s.Role == nil }

// SessionService resolves an opaque bearer token into a Session.
// An absent or invalid token yields domain.ErrNoSession; a failing role
// lookup yields an error wrapping domain.ErrRoleLookup. A principal without
// a role row is NOT an error.
type SessionService interface {
	Resolve(ctx context.Context, bearerToken string) (*Session, error)
}

// SnapshotService builds the role-scoped in-memory snapshot. Building only
// reads the store; failures on secondary collections are recorded in the
// snapshot's report instead of aborting.
type SnapshotService interface {
	Build(ctx context.Context, principal domain.Principal, role string) (*domain.Snapshot, error)
}

// SnapshotStore holds the latest applied snapshot per principal. Apply
// replaces the held snapshot wholesale, except that collections whose
// sub-fetch failed retain the previously held values; concurrent applies are
// last-wins.
type SnapshotStore interface {
	Apply(snapshot *domain.Snapshot) *domain.Snapshot
	Current(principalID string) (*domain.Snapshot, bool)
	Clear(principalID string)
}
