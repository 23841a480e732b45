package ports

import (
	"context"

	"github.com/rodnnnney/consensus25/internal/core/domain"
)

// TransferRequest describes one stablecoin transfer. Amount is in the
// token's base units (USDC: 6 decimals).
type TransferRequest struct {
	SenderAddress    string
	RecipientAddress string
	BaseUnits        uint64
}

// TransferResult is what the chain collaborator reports after finalization.
type TransferResult struct {
	Hash    string
	Success bool
	VMError string
}

// CoinBalance is one fungible-asset balance row from the indexer.
type CoinBalance struct {
	AssetType string
	Symbol    string
	Amount    uint64
	Decimals  int
}

// ChainClient is the opaque, possibly slow, possibly rate-limited blockchain
// collaborator. Implementations must translate the indexer's HTTP 429 into
// errors wrapping domain.ErrRateLimited.
type ChainClient interface {
	// SubmitTransfer builds, signs, and submits the transfer, returning the
	// pending transaction hash.
	SubmitTransfer(ctx context.Context, req TransferRequest) (hash string, err error)
	// WaitForTransaction polls until the transaction with the given hash is
	// finalized and reports the outcome.
	WaitForTransaction(ctx context.Context, hash string) (*TransferResult, error)
	// AccountBalances lists the account's coin balances.
	AccountBalances(ctx context.Context, address string) ([]CoinBalance, error)
	// DeriveKeylessAccount exchanges a verified OAuth id token plus the local
	// ephemeral key pair for a usable signing account.
	DeriveKeylessAccount(ctx context.Context, rawIDToken string, ekp *domain.EphemeralKeyPair) (*domain.KeylessAccount, error)
}
