package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rodnnnney/consensus25/internal/core/ports"
)

const aptCoinType = "0x1::aptos_coin::AptosCoin"

// BalanceService reads APT and USDC balances for a wallet address from the
// chain collaborator's indexer.
type BalanceService struct {
	chain ports.ChainClient
	log   zerolog.Logger
}

func NewBalanceService(chain ports.ChainClient, log zerolog.Logger) *BalanceService {
	return &BalanceService{chain: chain, log: log}
}

// Balances scans the account's coin rows for APT (8 decimals) and USDC
// (6 decimals). Unknown assets are ignored. Rate-limit errors from the
// indexer pass through unchanged so callers can surface the distinct state.
func (s *BalanceService) Balances(ctx context.Context, address string) (*ports.Balances, error) {
	coins, err := s.chain.AccountBalances(ctx, address)
	if err != nil {
		return nil, err
	}

	out := &ports.Balances{}
	for _, coin := range coins {
		switch {
		case coin.AssetType == aptCoinType || coin.Symbol == "APT":
			out.APT = decimal.NewFromUint64(coin.Amount).Shift(-8)
		case coin.Symbol == "USDC" || strings.Contains(strings.ToLower(coin.AssetType), "usdc"):
			out.USDC = decimal.NewFromUint64(coin.Amount).Shift(-6)
		}
	}
	return out, nil
}
