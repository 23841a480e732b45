package ports

import (
	"context"

	"github.com/rodnnnney/consensus25/internal/core/domain"
)

// EmployerRepository persists employer profiles (employers table).
type EmployerRepository interface {
	FindByID(ctx context.Context, id string) (*domain.EmployerProfile, error)
	Create(ctx context.Context, p *domain.EmployerProfile) error
}

// FreelancerProfileUpdate carries the mutable profile fields. Nil pointers
// leave the stored value untouched.
type FreelancerProfileUpdate struct {
	Bio           *string
	Twitter       *string
	Site          *string
	Farcaster     *string
	WalletAddress *string
	ProfileImage  *string
}

// FreelancerRepository persists freelancer profiles (freelancers table).
type FreelancerRepository interface {
	FindByID(ctx context.Context, id string) (*domain.FreelancerProfile, error)
	// ListByEmployer returns the freelancers whose employer_id matches.
	ListByEmployer(ctx context.Context, employerID string) ([]domain.FreelancerProfile, error)
	// ListAll returns the global freelancer directory.
	ListAll(ctx context.Context) ([]domain.FreelancerProfile, error)
	Create(ctx context.Context, p *domain.FreelancerProfile) error
	Update(ctx context.Context, id string, upd FreelancerProfileUpdate) error
}
