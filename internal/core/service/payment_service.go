package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rodnnnney/consensus25/internal/metrics"
	"github.com/rodnnnney/consensus25/internal/core/domain"
	"github.com/rodnnnney/consensus25/internal/core/ports"
)

// usdcDecimals is the fungible asset's on-chain precision.
const usdcDecimals = 6

// PaymentService executes the stablecoin payment and records the result.
// The record is written strictly after the chain collaborator reports the
// transfer finalized; an unsuccessful transfer writes nothing.
type PaymentService struct {
	jobs         ports.JobRepository
	freelancers  ports.FreelancerRepository
	transactions ports.TransactionRepository
	chain        ports.ChainClient
	keyless      ports.KeylessService
	log          zerolog.Logger
}

func NewPaymentService(
	jobs ports.JobRepository,
	freelancers ports.FreelancerRepository,
	transactions ports.TransactionRepository,
	chain ports.ChainClient,
	keyless ports.KeylessService,
	log zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		jobs:         jobs,
		freelancers:  freelancers,
		transactions: transactions,
		chain:        chain,
		keyless:      keyless,
		log:          log,
	}
}

// Pay transfers one hour of the posting's rate to its freelancer's wallet.
func (s *PaymentService) Pay(ctx context.Context, input ports.PayInput) (*ports.PayResult, error) {
	// 1. Load the posting and its freelancer; the wallet address is the
	// unique payment destination.
	job, err := s.jobs.FindByID(ctx, input.JobID)
	if err != nil {
		return nil, err
	}
	freelancer, err := s.freelancers.FindByID(ctx, job.FreelancerID)
	if err != nil {
		return nil, err
	}
	if freelancer.WalletAddress == "" {
		return nil, domain.ErrWalletMissing
	}

	// 2. The employer signs with their keyless-derived account.
	account, err := s.keyless.Restore(ctx, input.EmployerID)
	if err != nil {
		return nil, err
	}

	amount := job.Rate
	baseUnits, err := toBaseUnits(amount)
	if err != nil {
		return nil, err
	}

	// 3. Build, sign, submit, then wait for finalization.
	hash, err := s.chain.SubmitTransfer(ctx, ports.TransferRequest{
		SenderAddress:    account.Address,
		RecipientAddress: freelancer.WalletAddress,
		BaseUnits:        baseUnits,
	})
	if err != nil {
		metrics.PaymentsTotal.WithLabelValues("submit_error").Inc()
		return nil, fmt.Errorf("submit transfer: %w", err)
	}

	result, err := s.chain.WaitForTransaction(ctx, hash)
	if err != nil {
		metrics.PaymentsTotal.WithLabelValues("wait_error").Inc()
		return nil, fmt.Errorf("wait for transfer %s: %w", hash, err)
	}
	if !result.Success {
		metrics.PaymentsTotal.WithLabelValues("failed").Inc()
		s.log.Error().
			Str("tx_hash", result.Hash).
			Str("vm_error", result.VMError).
			Msg("transfer not successful, nothing recorded")
		if result.VMError != "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrTransferFailed, result.VMError)
		}
		return nil, domain.ErrTransferFailed
	}

	// 4. Only now is it safe to record.
	recorded, err := s.RecordPayment(ctx, ports.RecordPaymentInput{
		TxHash:       result.Hash,
		EmployerID:   input.EmployerID,
		ContractorID: freelancer.ID,
		Price:        job.Rate,
		Amount:       amount,
	})
	if err != nil {
		return nil, err
	}

	metrics.PaymentsTotal.WithLabelValues("completed").Inc()
	return &ports.PayResult{
		TxHash:          result.Hash,
		Amount:          amount,
		AlreadyRecorded: !recorded,
	}, nil
}

// RecordPayment persists one confirmed transfer. A row with the same hash
// already existing makes this a no-op, guarding against double-submission
// when a user re-confirms a dialog after a slow response.
func (s *PaymentService) RecordPayment(ctx context.Context, input ports.RecordPaymentInput) (bool, error) {
	existing, err := s.transactions.FindByHash(ctx, input.TxHash)
	if err != nil {
		return false, fmt.Errorf("check existing record for %s: %w", input.TxHash, err)
	}
	if existing != nil {
		metrics.PaymentsTotal.WithLabelValues("duplicate").Inc()
		s.log.Info().Str("tx_hash", input.TxHash).Msg("transfer already recorded, skipping insert")
		return false, nil
	}

	tx := &domain.Transaction{
		ContractorID: input.ContractorID,
		CompanyID:    input.EmployerID,
		Price:        input.Price,
		Amount:       input.Amount,
		Status:       domain.TxCompleted,
		TxHash:       input.TxHash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		return false, fmt.Errorf("record payment %s: %w", input.TxHash, err)
	}

	s.log.Info().
		Str("tx_hash", input.TxHash).
		Str("contractor_id", input.ContractorID).
		Str("company_id", input.EmployerID).
		Str("amount", input.Amount.String()).
		Msg("payment recorded")

	return true, nil
}

// toBaseUnits converts a whole-token USDC amount to on-chain base units.
func toBaseUnits(amount decimal.Decimal) (uint64, error) {
	shifted := amount.Shift(usdcDecimals)
	if shifted.IsNegative() || !shifted.IsInteger() {
		return 0, fmt.Errorf("amount %s not representable in %d decimals", amount, usdcDecimals)
	}
	return uint64(shifted.IntPart()), nil
}
