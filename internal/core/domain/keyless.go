package domain

import (
	"crypto/ed25519"
	"errors"
	"time"
)

var ErrTokenExpired = errors.New("identity token expired")
var ErrNonceMismatch = errors.New("identity token nonce does not match ephemeral key")
var ErrNoEphemeralKey = errors.New("no ephemeral key pair for principal")

// EphemeralKeyPair is the locally generated, short-lived key pair whose
// commitment is carried as the OAuth nonce. It never leaves the service.
type EphemeralKeyPair struct {
	PublicKey  ed25519.PublicKey  `json:"public_key"`
	PrivateKey ed25519.PrivateKey `json:"private_key"`
	Blinder    []byte             `json:"blinder"`
	Nonce      string             `json:"nonce"`
	ExpiresAt  time.Time          `json:"expires_at"`
}

// Expired reports whether the pair can no longer be used for a login flow.
func (k *EphemeralKeyPair) Expired(now time.Time) bool {
	return !now.Before(k.ExpiresAt)
}

// KeylessAccount is the signing identity derived from an OAuth id token plus
// an ephemeral key pair. The raw token is retained so the account can be
// restored later, after a fresh local exp check.
type KeylessAccount struct {
	Address    string    `json:"address"`
	RawIDToken string    `json:"raw_id_token"`
	ExpiresAt  time.Time `json:"expires_at"`
}
