package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rodnnnney/consensus25/internal/core/domain"
	"github.com/rodnnnney/consensus25/internal/core/ports"
)

var errMissingOnboardingFields = errors.New("required onboarding fields missing")

// OnboardingService writes the role row and the role-specific profile for a
// freshly registered principal.
type OnboardingService struct {
	roles       ports.RoleRepository
	employers   ports.EmployerRepository
	freelancers ports.FreelancerRepository
	log         zerolog.Logger
}

func NewOnboardingService(
	roles ports.RoleRepository,
	employers ports.EmployerRepository,
	freelancers ports.FreelancerRepository,
	log zerolog.Logger,
) *OnboardingService {
	return &OnboardingService{roles: roles, employers: employers, freelancers: freelancers, log: log}
}

// Complete upserts the users row and inserts the profile. The employer's
// company id is generated here and never again.
func (s *OnboardingService) Complete(ctx context.Context, principal domain.Principal, input ports.OnboardingInput) (domain.RoleProfile, error) {
	var none domain.RoleProfile

	if !domain.ValidRole(input.Role) {
		return none, fmt.Errorf("%w: invalid role %q", errMissingOnboardingFields, input.Role)
	}

	// A principal onboards exactly once; an existing role row blocks a second
	// pass regardless of which role it holds.
	existing, err := s.roles.FindRole(ctx, principal.ID)
	if err != nil {
		return none, fmt.Errorf("find role: %w", err)
	}
	if existing != nil {
		return none, domain.ErrAlreadyOnboarded
	}

	switch input.Role {
	case domain.RoleEmployer:
		if input.CompanyName == "" || input.Headcount == "" || input.Country == "" {
			return none, errMissingOnboardingFields
		}
		if err := s.roles.UpsertRole(ctx, principal.ID, domain.RoleEmployer); err != nil {
			return none, fmt.Errorf("upsert role: %w", err)
		}
		employer := &domain.EmployerProfile{
			ID:          principal.ID,
			CompanyName: input.CompanyName,
			CompanyID:   uuid.NewString(),
			Headcount:   input.Headcount,
			Country:     input.Country,
		}
		if err := s.employers.Create(ctx, employer); err != nil {
			return none, fmt.Errorf("create employer profile: %w", err)
		}
		s.log.Info().Str("principal_id", principal.ID).Str("company_id", employer.CompanyID).Msg("employer onboarded")
		return domain.EmployerRoleProfile(employer), nil

	case domain.RoleFreelancer:
		if input.FirstName == "" || input.LastName == "" || input.TaxID == "" ||
			input.Country == "" || input.WalletAddress == "" {
			return none, errMissingOnboardingFields
		}
		if err := s.roles.UpsertRole(ctx, principal.ID, domain.RoleFreelancer); err != nil {
			return none, fmt.Errorf("upsert role: %w", err)
		}
		freelancer := &domain.FreelancerProfile{
			ID:            principal.ID,
			FirstName:     input.FirstName,
			LastName:      input.LastName,
			TaxID:         input.TaxID,
			Country:       input.Country,
			Email:         principal.Email,
			WalletAddress: input.WalletAddress,
		}
		if err := s.freelancers.Create(ctx, freelancer); err != nil {
			return none, fmt.Errorf("create freelancer profile: %w", err)
		}
		s.log.Info().Str("principal_id", principal.ID).Msg("freelancer onboarded")
		return domain.FreelancerRoleProfile(freelancer), nil
	}

	return none, errMissingOnboardingFields
}
