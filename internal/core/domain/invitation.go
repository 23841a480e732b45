package domain

import "time"

const InvitationPending = "pending"

// Invitation is an employer's pending invite for a freelancer to join their
// roster, identified by an opaque token mailed to the invitee.
type Invitation struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Token      string    `json:"token"`
	EmployerID string    `json:"employer_id,omitempty"`
	CompanyID  string    `json:"company_id,omitempty"`
	Status     string    `json:"status,omitempty"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}
