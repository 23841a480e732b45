package ports

import (
	"context"

	"github.com/rodnnnney/consensus25/internal/core/domain"
)

// OnboardingInput carries the role choice plus the role-specific form
// fields. Exactly one of the two field groups is read, depending on Role.
type OnboardingInput struct {
	Role string

	// employer fields
	CompanyName string
	Headcount   string

	// freelancer fields
	FirstName     string
	LastName      string
	TaxID         string
	WalletAddress string

	// shared
	Country string
}

// OnboardingService writes the role row and the role-specific profile.
// The employer's company id is generated here, exactly once.
type OnboardingService interface {
	Complete(ctx context.Context, principal domain.Principal, input OnboardingInput) (domain.RoleProfile, error)
}

// AvatarUpload is an image destined for the pfp bucket.
type AvatarUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ProfileService updates a freelancer's profile and uploads avatars.
type ProfileService interface {
	UpdateFreelancer(ctx context.Context, freelancerID string, upd FreelancerProfileUpdate) (*domain.FreelancerProfile, error)
	UploadAvatar(ctx context.Context, freelancerID string, upload AvatarUpload) (publicURL string, err error)
}

// InvitationService creates and lists employer invitations.
type InvitationService interface {
	Invite(ctx context.Context, employerID, email string) (*domain.Invitation, error)
	ListForEmployer(ctx context.Context, employerID string) ([]domain.Invitation, error)
}

// NotificationResult is the set of payments that arrived since the caller
// last checked.
type NotificationResult struct {
	NewPayments []domain.Transaction
	CheckedAt   string
}

// NotificationService compares role-scoped transactions against the stored
// last-checked timestamp.
type NotificationService interface {
	NewPayments(ctx context.Context, principalID, role string) (*NotificationResult, error)
	MarkChecked(ctx context.Context, principalID string) error
}
