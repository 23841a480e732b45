package domain

import (
	"errors"
	"time"
)

const (
	RoleEmployer   = "employer"
	RoleFreelancer = "freelancer"
)

var ErrNoSession = errors.New("no active session")
var ErrRoleLookup = errors.New("role lookup failed")
var ErrAlreadyOnboarded = errors.New("principal already onboarded")

// Principal is the authenticated identity reported by the external auth
// collaborator. It carries no role: roles live in the users table.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// RoleRecord maps a principal to exactly one role. Absence of a record is a
// valid state (registered but not yet onboarded), not an error.
type RoleRecord struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidRole reports whether the given tag is one of the two closed roles.
func ValidRole(role string) bool {
	return role == RoleEmployer || role == RoleFreelancer
}
