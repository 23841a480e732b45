package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// PayInput identifies the posting an employer is paying an hour of.
type PayInput struct {
	EmployerID string
	JobID      string
}

// PayResult reports the confirmed transfer and whether the database record
// already existed (idempotent replay after a re-confirmed dialog).
type PayResult struct {
	TxHash          string
	Amount          decimal.Decimal
	AlreadyRecorded bool
}

// RecordPaymentInput carries everything needed to persist one confirmed
// transfer. Hash is the de-duplication key.
type RecordPaymentInput struct {
	TxHash       string
	EmployerID   string
	ContractorID string
	Price        decimal.Decimal
	Amount       decimal.Decimal
}

// PaymentService executes the on-chain payment and records it. Recording
// runs strictly after the chain collaborator reports finalization; an
// unsuccessful transfer writes nothing.
type PaymentService interface {
	Pay(ctx context.Context, input PayInput) (*PayResult, error)
	// RecordPayment inserts a completed transaction unless a row with the
	// same hash exists, in which case it is a no-op.
	RecordPayment(ctx context.Context, input RecordPaymentInput) (recorded bool, err error)
}

// Balances is the wallet view shown on both dashboards, in whole-token
// units (APT has 8 decimals on chain, USDC has 6).
type Balances struct {
	APT  decimal.Decimal
	USDC decimal.Decimal
}

// BalanceService reads coin balances for a wallet address via the chain
// collaborator.
type BalanceService interface {
	Balances(ctx context.Context, address string) (*Balances, error)
}
