package ports

import (
	"context"

	"github.com/rodnnnney/consensus25/internal/core/domain"
)

// TransactionRepository persists payment records (transactions table).
type TransactionRepository interface {
	Create(ctx context.Context, t *domain.Transaction) error
	// FindByHash returns the record with the given on-chain hash, or
	// (nil, nil) when none exists. Rows are unique per hash.
	FindByHash(ctx context.Context, txHash string) (*domain.Transaction, error)
	// ListByContractor returns transactions received by a freelancer.
	ListByContractor(ctx context.Context, contractorID string) ([]domain.Transaction, error)
	// ListByCompany returns transactions paid by an employer
	// (company_id holds the employer's principal id).
	ListByCompany(ctx context.Context, companyID string) ([]domain.Transaction, error)
}

// InvitationRepository persists employer invitations (invitations table).
type InvitationRepository interface {
	Create(ctx context.Context, inv *domain.Invitation) error
	ListByEmployer(ctx context.Context, employerID string) ([]domain.Invitation, error)
}
