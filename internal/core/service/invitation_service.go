package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rodnnnney/consensus25/internal/core/domain"
	"github.com/rodnnnney/consensus25/internal/core/ports"
)

const invitationTTL = 7 * 24 * time.Hour

var errInvalidInviteEmail = errors.New("invitation email is required")

// InvitationService creates and lists employer invitations.
type InvitationService struct {
	employers   ports.EmployerRepository
	invitations ports.InvitationRepository
	log         zerolog.Logger
}

func NewInvitationService(employers ports.EmployerRepository, invitations ports.InvitationRepository, log zerolog.Logger) *InvitationService {
	return &InvitationService{employers: employers, invitations: invitations, log: log}
}

// Invite creates a pending invitation with a fresh opaque token.
func (s *InvitationService) Invite(ctx context.Context, employerID, email string) (*domain.Invitation, error) {
	if email == "" {
		return nil, errInvalidInviteEmail
	}

	employer, err := s.employers.FindByID(ctx, employerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	inv := &domain.Invitation{
		Email:      email,
		Token:      uuid.NewString(),
		EmployerID: employer.ID,
		CompanyID:  employer.CompanyID,
		Status:     domain.InvitationPending,
		ExpiresAt:  now.Add(invitationTTL),
		CreatedAt:  now,
	}
	if err := s.invitations.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("create invitation: %w", err)
	}

	s.log.Info().Str("employer_id", employerID).Str("email", email).Msg("invitation created")
	return inv, nil
}

// ListForEmployer returns all invitations owned by the employer.
func (s *InvitationService) ListForEmployer(ctx context.Context, employerID string) ([]domain.Invitation, error) {
	return s.invitations.ListByEmployer(ctx, employerID)
}
