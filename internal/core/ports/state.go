package ports

import (
	"context"
	"time"

	"github.com/rodnnnney/consensus25/internal/core/domain"
)

// BlobStore uploads binary objects (profile images) and returns a public URL.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (publicURL string, err error)
}

// ClientStateStore is the small persistent key-value state kept per
// principal: the last-checked timestamp for payment notifications and the
// ephemeral key / keyless account markers. Nothing else durable lives here.
type ClientStateStore interface {
	LastChecked(ctx context.Context, principalID string) (time.Time, error)
	SetLastChecked(ctx context.Context, principalID string, ts time.Time) error

	EphemeralKeyPair(ctx context.Context, principalID string) (*domain.EphemeralKeyPair, error)
	SaveEphemeralKeyPair(ctx context.Context, principalID string, ekp *domain.EphemeralKeyPair) error

	KeylessAccount(ctx context.Context, principalID string) (*domain.KeylessAccount, error)
	SaveKeylessAccount(ctx context.Context, principalID string, acct *domain.KeylessAccount) error
}
