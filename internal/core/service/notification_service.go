package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rodnnnney/consensus25/internal/core/domain"
	"github.com/rodnnnney/consensus25/internal/core/ports"
)

// NotificationService reports payments that arrived since the principal's
// stored last-checked timestamp.
type NotificationService struct {
	transactions ports.TransactionRepository
	state        ports.ClientStateStore
	log          zerolog.Logger
}

func NewNotificationService(transactions ports.TransactionRepository, state ports.ClientStateStore, log zerolog.Logger) *NotificationService {
	return &NotificationService{transactions: transactions, state: state, log: log}
}

// NewPayments lists role-scoped transactions newer than the stored
// last-checked timestamp. A zero timestamp (first check) counts everything.
func (s *NotificationService) NewPayments(ctx context.Context, principalID, role string) (*ports.NotificationResult, error) {
	last, err := s.state.LastChecked(ctx, principalID)
	if err != nil {
		return nil, fmt.Errorf("load last-checked: %w", err)
	}

	var txs []domain.Transaction
	switch role {
	case domain.RoleFreelancer:
		txs, err = s.transactions.ListByContractor(ctx, principalID)
	case domain.RoleEmployer:
		txs, err = s.transactions.ListByCompany(ctx, principalID)
	default:
		return &ports.NotificationResult{}, nil
	}
	if err != nil {
		return nil, err
	}

	fresh := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if last.IsZero() || tx.CreatedAt.After(last) {
			fresh = append(fresh, tx)
		}
	}

	result := &ports.NotificationResult{NewPayments: fresh}
	if !last.IsZero() {
		result.CheckedAt = last.UTC().Format(time.RFC3339)
	}
	return result, nil
}

// MarkChecked stores now as the last-checked timestamp.
func (s *NotificationService) MarkChecked(ctx context.Context, principalID string) error {
	if err := s.state.SetLastChecked(ctx, principalID, time.Now().UTC()); err != nil {
		return fmt.Errorf("store last-checked: %w", err)
	}
	return nil
}
