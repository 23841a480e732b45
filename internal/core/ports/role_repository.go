package ports

import (
	"context"

	"github.com/rodnnnney/consensus25/internal/core/domain"
)

// RoleRepository reads and writes the users table, which maps a principal id
// to its single role row.
type RoleRepository interface {
	// FindRole returns the role record for the principal, or
	// domain.ErrRoleLookup-wrapped errors on store failure. A missing row is
	// reported as (nil, nil): not yet onboarded is a valid state.
	FindRole(ctx context.Context, principalID string) (*domain.RoleRecord, error)
	// UpsertRole writes the role row, overwriting an existing one with the
	// same id.
	UpsertRole(ctx context.Context, principalID, role string) error
}
