// Package chain wraps the Aptos SDK behind the ChainClient port. The node
// and indexer are treated as an opaque collaborator: HTTP 429 responses
// surface as domain.ErrRateLimited. The SDK's node and indexer calls take no
// context, so cancellation is bounded by the SDK's own HTTP timeouts.
package chain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/aptos-labs/aptos-go-sdk"
	"github.com/aptos-labs/aptos-go-sdk/bcs"
	"github.com/aptos-labs/aptos-go-sdk/crypto"
	"github.com/rs/zerolog"

	"github.com/rodnnnney/consensus25/internal/core/domain"
	"github.com/rodnnnney/consensus25/internal/core/ports"
)

const aptCoinType = "0x1::aptos_coin::AptosCoin"

// Config selects the network and the fungible asset used for payments.
type Config struct {
	Network     string // mainnet, testnet, devnet
	NodeURL     string // optional override
	IndexerURL  string // optional override
	USDCAddress string // metadata object address of the USDC fungible asset
}

// Client implements ports.ChainClient on the Aptos Go SDK. Derived keyless
// signers are cached in memory by address; after a restart the employer goes
// through the login exchange again before the next payment.
type Client struct {
	client   *aptos.Client
	usdcAddr aptos.AccountAddress
	log      zerolog.Logger

	mu      sync.RWMutex
	signers map[string]aptos.TransactionSigner
}

func NewClient(cfg Config, log zerolog.Logger) (*Client, error) {
	netCfg, err := networkConfig(cfg)
	if err != nil {
		return nil, err
	}

	sdkClient, err := aptos.NewClient(netCfg)
	if err != nil {
		return nil, fmt.Errorf("aptos client: %w", err)
	}

	var usdcAddr aptos.AccountAddress
	if err := usdcAddr.ParseStringRelaxed(cfg.USDCAddress); err != nil {
		return nil, fmt.Errorf("parse usdc metadata address %q: %w", cfg.USDCAddress, err)
	}

	return &Client{
		client:   sdkClient,
		usdcAddr: usdcAddr,
		log:      log,
		signers:  map[string]aptos.TransactionSigner{},
	}, nil
}

func networkConfig(cfg Config) (aptos.NetworkConfig, error) {
	var base aptos.NetworkConfig
	switch strings.ToLower(cfg.Network) {
	case "mainnet":
		base = aptos.MainnetConfig
	case "", "testnet":
		base = aptos.TestnetConfig
	case "devnet":
		base = aptos.DevnetConfig
	default:
		return aptos.NetworkConfig{}, fmt.Errorf("unknown network %q", cfg.Network)
	}
	if cfg.NodeURL != "" {
		base.NodeUrl = cfg.NodeURL
	}
	if cfg.IndexerURL != "" {
		base.IndexerUrl = cfg.IndexerURL
	}
	return base, nil
}

// SubmitTransfer moves USDC base units between primary fungible stores via
// 0x1::primary_fungible_store::transfer.
func (c *Client) SubmitTransfer(ctx context.Context, req ports.TransferRequest) (string, error) {
	signer, err := c.signerFor(req.SenderAddress)
	if err != nil {
		return "", err
	}

	var recipient aptos.AccountAddress
	if err := recipient.ParseStringRelaxed(req.RecipientAddress); err != nil {
		return "", fmt.Errorf("parse recipient address %q: %w", req.RecipientAddress, err)
	}

	metadataArg, err := bcs.Serialize(&c.usdcAddr)
	if err != nil {
		return "", fmt.Errorf("serialize metadata address: %w", err)
	}
	recipientArg, err := bcs.Serialize(&recipient)
	if err != nil {
		return "", fmt.Errorf("serialize recipient: %w", err)
	}
	amountArg, err := bcs.SerializeU64(req.BaseUnits)
	if err != nil {
		return "", fmt.Errorf("serialize amount: %w", err)
	}

	payload := aptos.TransactionPayload{
		Payload: &aptos.EntryFunction{
			Module:   aptos.ModuleId{Address: aptos.AccountOne, Name: "primary_fungible_store"},
			Function: "transfer",
			ArgTypes: []aptos.TypeTag{
				{Value: &aptos.StructTag{Address: aptos.AccountOne, Module: "fungible_asset", Name: "Metadata"}},
			},
			Args: [][]byte{metadataArg, recipientArg, amountArg},
		},
	}

	pending, err := c.client.BuildSignAndSubmitTransaction(signer, payload)
	if err != nil {
		return "", c.wrap("submit transfer", err)
	}

	c.log.Debug().
		Str("hash", pending.Hash).
		Str("recipient", req.RecipientAddress).
		Uint64("base_units", req.BaseUnits).
		Msg("transfer submitted")
	return pending.Hash, nil
}

// WaitForTransaction blocks until the transaction with the given hash is
// committed and reports the on-chain outcome.
func (c *Client) WaitForTransaction(ctx context.Context, hash string) (*ports.TransferResult, error) {
	txn, err := c.client.WaitForTransaction(hash)
	if err != nil {
		return nil, c.wrap("wait for transaction", err)
	}

	result := &ports.TransferResult{
		Hash:    txn.Hash,
		Success: txn.Success,
	}
	if !txn.Success {
		result.VMError = txn.VmStatus
	}
	return result, nil
}

// AccountBalances lists the account's coin rows from the indexer, tagging
// APT and the configured USDC asset so callers can pick them out.
func (c *Client) AccountBalances(ctx context.Context, address string) ([]ports.CoinBalance, error) {
	var addr aptos.AccountAddress
	if err := addr.ParseStringRelaxed(address); err != nil {
		return nil, fmt.Errorf("parse account address %q: %w", address, err)
	}

	coins, err := c.client.GetCoinBalances(addr)
	if err != nil {
		return nil, c.wrap("fetch balances", err)
	}

	usdc := c.usdcAddr.String()
	out := make([]ports.CoinBalance, 0, len(coins))
	for _, coin := range coins {
		balance := ports.CoinBalance{
			AssetType: coin.CoinType,
			Amount:    coin.Amount,
		}
		switch coin.CoinType {
		case aptCoinType:
			balance.Symbol = "APT"
			balance.Decimals = 8
		case usdc:
			balance.Symbol = "USDC"
			balance.Decimals = 6
		}
		out = append(out, balance)
	}
	return out, nil
}

// DeriveKeylessAccount turns the ephemeral key pair into a signing account
// and caches the signer for later transfers. The pepper/prover roundtrip is
// out of scope here; the account is derived from the ephemeral key itself,
// which keeps the address stable for the pair's lifetime.
func (c *Client) DeriveKeylessAccount(ctx context.Context, rawIDToken string, ekp *domain.EphemeralKeyPair) (*domain.KeylessAccount, error) {
	privKey := &crypto.Ed25519PrivateKey{}
	if err := privKey.FromBytes(ekp.PrivateKey.Seed()); err != nil {
		return nil, fmt.Errorf("load ephemeral private key: %w", err)
	}

	account, err := aptos.NewAccountFromSigner(privKey)
	if err != nil {
		return nil, fmt.Errorf("derive account: %w", err)
	}

	address := account.Address.String()
	c.mu.Lock()
	c.signers[address] = account
	c.mu.Unlock()

	return &domain.KeylessAccount{
		Address:    address,
		RawIDToken: rawIDToken,
		ExpiresAt:  ekp.ExpiresAt,
	}, nil
}

func (c *Client) signerFor(address string) (aptos.TransactionSigner, error) {
	c.mu.RLock()
	signer, ok := c.signers[address]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: no signer cached for %s", domain.ErrNoEphemeralKey, address)
	}
	return signer, nil
}

// wrap maps SDK errors onto domain sentinels, in particular the indexer's
// 429 responses.
func (c *Client) wrap(op string, err error) error {
	var httpErr *aptos.HttpError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%s: %w", op, domain.ErrRateLimited)
	}
	return fmt.Errorf("%s: %w", op, err)
}
