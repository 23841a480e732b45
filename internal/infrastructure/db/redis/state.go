package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rodnnnney/consensus25/internal/core/domain"
)

const (
	lastCheckedKey  = "notify:last_checked:%s"
	ephemeralKey    = "keyless:ekp:%s"
	keylessAcctKey  = "keyless:acct:%s"
	lastCheckedTTL  = 0 // no expiry
	keylessStateTTL = 48 * time.Hour
)

// ClientStateStore keeps the small per-principal key-value state in Redis:
// notification watermarks and keyless login material. Keyless entries expire
// past any possible ephemeral key lifetime so stale key pairs cannot linger.
type ClientStateStore struct {
	client *redis.Client
}

func NewClientStateStore(client *redis.Client) *ClientStateStore {
	return &ClientStateStore{client: client}
}

// LastChecked returns the payment-notification watermark for a principal.
// A principal never seen before gets the zero time.
func (s *ClientStateStore) LastChecked(ctx context.Context, principalID string) (time.Time, error) {
	val, err := s.client.Get(ctx, fmt.Sprintf(lastCheckedKey, principalID)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("get last checked: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, val)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse last checked: %w", err)
	}
	return ts, nil
}

func (s *ClientStateStore) SetLastChecked(ctx context.Context, principalID string, ts time.Time) error {
	key := fmt.Sprintf(lastCheckedKey, principalID)
	if err := s.client.Set(ctx, key, ts.UTC().Format(time.RFC3339Nano), lastCheckedTTL).Err(); err != nil {
		return fmt.Errorf("set last checked: %w", err)
	}
	return nil
}

// EphemeralKeyPair returns the stored pair, or (nil, nil) when none exists.
func (s *ClientStateStore) EphemeralKeyPair(ctx context.Context, principalID string) (*domain.EphemeralKeyPair, error) {
	var ekp domain.EphemeralKeyPair
	ok, err := s.getJSON(ctx, fmt.Sprintf(ephemeralKey, principalID), &ekp)
	if err != nil || !ok {
		return nil, err
	}
	return &ekp, nil
}

func (s *ClientStateStore) SaveEphemeralKeyPair(ctx context.Context, principalID string, ekp *domain.EphemeralKeyPair) error {
	return s.setJSON(ctx, fmt.Sprintf(ephemeralKey, principalID), ekp)
}

// KeylessAccount returns the stored account, or (nil, nil) when none exists.
func (s *ClientStateStore) KeylessAccount(ctx context.Context, principalID string) (*domain.KeylessAccount, error) {
	var acct domain.KeylessAccount
	ok, err := s.getJSON(ctx, fmt.Sprintf(keylessAcctKey, principalID), &acct)
	if err != nil || !ok {
		return nil, err
	}
	return &acct, nil
}

func (s *ClientStateStore) SaveKeylessAccount(ctx context.Context, principalID string, acct *domain.KeylessAccount) error {
	return s.setJSON(ctx, fmt.Sprintf(keylessAcctKey, principalID), acct)
}

func (s *ClientStateStore) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *ClientStateStore) setJSON(ctx context.Context, key string, val any) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, raw, keylessStateTTL).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
