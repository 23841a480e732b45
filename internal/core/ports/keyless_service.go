package ports

import (
	"context"

	"github.com/rodnnnney/consensus25/internal/core/domain"
)

// KeylessService drives the OAuth-based keyless signing flow: issue or reuse
// an ephemeral key pair, hand out the provider redirect URL, and exchange
// the callback's id token for a signing account.
type KeylessService interface {
	// LoginURL returns the identity-provider redirect URL carrying the nonce
	// derived from the principal's current (non-expired) ephemeral key pair.
	// A missing or expired pair is regenerated first.
	LoginURL(ctx context.Context, principalID string) (string, error)
	// Exchange validates the id token locally (exp claim, nonce commitment)
	// and derives the signing account via the chain collaborator.
	Exchange(ctx context.Context, principalID, rawIDToken string) (*domain.KeylessAccount, error)
	// Restore re-checks the stored token's exp claim and returns the saved
	// account, or domain.ErrTokenExpired when a fresh sign-in is required.
	Restore(ctx context.Context, principalID string) (*domain.KeylessAccount, error)
}
