package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rodnnnney/consensus25/internal/core/domain"
)

func TestNotificationService_FirstCheckCountsEverything(t *testing.T) {
	transactions := &stubTransactionRepo{
		listByContractorFn: func(ctx context.Context, contractorID string) ([]domain.Transaction, error) {
			return []domain.Transaction{
				{ID: "t1", CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
				{ID: "t2", CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
			}, nil
		},
	}
	svc := NewNotificationService(transactions, newMemStateStore(), zerolog.Nop())

	result, err := svc.NewPayments(context.Background(), "fre-1", domain.RoleFreelancer)
	if err != nil {
		t.Fatalf("new payments: %v", err)
	}
	if len(result.NewPayments) != 2 {
		t.Fatalf("zero watermark must count everything: %+v", result.NewPayments)
	}
}

func TestNotificationService_FiltersByWatermark(t *testing.T) {
	state := newMemStateStore()
	state.lastChecked["emp-1"] = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	transactions := &stubTransactionRepo{
		listByCompanyFn: func(ctx context.Context, companyID string) ([]domain.Transaction, error) {
			return []domain.Transaction{
				{ID: "old", CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
				{ID: "new", CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
			}, nil
		},
	}
	svc := NewNotificationService(transactions, state, zerolog.Nop())

	result, err := svc.NewPayments(context.Background(), "emp-1", domain.RoleEmployer)
	if err != nil {
		t.Fatalf("new payments: %v", err)
	}
	if len(result.NewPayments) != 1 || result.NewPayments[0].ID != "new" {
		t.Fatalf("expected only the newer payment: %+v", result.NewPayments)
	}
	if result.CheckedAt == "" {
		t.Fatalf("expected checked-at echo for a non-zero watermark")
	}
}

func TestNotificationService_NoRole(t *testing.T) {
	svc := NewNotificationService(&stubTransactionRepo{}, newMemStateStore(), zerolog.Nop())

	result, err := svc.NewPayments(context.Background(), "new-user", "")
	if err != nil {
		t.Fatalf("new payments: %v", err)
	}
	if len(result.NewPayments) != 0 {
		t.Fatalf("no role means no payments: %+v", result.NewPayments)
	}
}

func TestNotificationService_MarkChecked(t *testing.T) {
	state := newMemStateStore()
	svc := NewNotificationService(&stubTransactionRepo{}, state, zerolog.Nop())

	before := time.Now().UTC()
	if err := svc.MarkChecked(context.Background(), "fre-1"); err != nil {
		t.Fatalf("mark checked: %v", err)
	}
	ts := state.lastChecked["fre-1"]
	if ts.Before(before) {
		t.Fatalf("watermark not advanced: %v", ts)
	}
}
