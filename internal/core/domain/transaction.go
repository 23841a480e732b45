package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction status tags as stored in the transactions table.
const (
	TxCompleted = "completed"
	TxPending   = "pending"
	TxFailed    = "failed"
)

var ErrTransferFailed = errors.New("on-chain transfer did not succeed")

// Transaction records a confirmed on-chain USDC payment from an employer to
// a freelancer. TxHash is unique per confirmed transfer: the write path must
// check for an existing row with the same hash before inserting.
type Transaction struct {
	ID             string          `json:"id"`
	ContractorID   string          `json:"contractor_id"`
	CompanyID      string          `json:"company_id"`
	Price          decimal.Decimal `json:"usdc_price"`
	Amount         decimal.Decimal `json:"usdc_amount"`
	FiatEquivalent string          `json:"fiat_equivalent,omitempty"`
	Status         string          `json:"status"`
	TxHash         string          `json:"tx_hash"`
	CreatedAt      time.Time       `json:"created_at"`
}
