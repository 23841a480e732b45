package service

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/sha3"

	"github.com/rodnnnney/consensus25/internal/core/domain"
	"github.com/rodnnnney/consensus25/internal/core/ports"
)

const (
	oauthAuthEndpoint = "https://accounts.google.com/o/oauth2/v2/auth"
	oauthScopes       = "openid email profile"
	ephemeralTTL      = 24 * time.Hour
	blinderLen        = 31
)

// KeylessService drives the OAuth keyless signing flow: a locally generated
// ephemeral key pair is committed into the provider nonce, and the returned
// id token plus the pair is exchanged for a signing account.
type KeylessService struct {
	state       ports.ClientStateStore
	chain       ports.ChainClient
	clientID    string
	redirectURI string
	log         zerolog.Logger
	now         func() time.Time
}

func NewKeylessService(state ports.ClientStateStore, chain ports.ChainClient, clientID, redirectURI string, log zerolog.Logger) *KeylessService {
	return &KeylessService{
		state:       state,
		chain:       chain,
		clientID:    clientID,
		redirectURI: redirectURI,
		log:         log,
		now:         time.Now,
	}
}

// LoginURL returns the provider redirect URL for the principal. The current
// ephemeral key pair is reused while valid and regenerated once expired.
func (s *KeylessService) LoginURL(ctx context.Context, principalID string) (string, error) {
	ekp, err := s.ensureKeyPair(ctx, principalID)
	if err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("client_id", s.clientID)
	q.Set("redirect_uri", s.redirectURI)
	q.Set("response_type", "id_token")
	q.Set("scope", oauthScopes)
	q.Set("nonce", ekp.Nonce)

	u, err := url.Parse(oauthAuthEndpoint)
	if err != nil {
		return "", err
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Exchange validates the id token locally and derives the signing account
// via the chain collaborator. The exp claim is checked against the local
// clock before anything else; the nonce must match the stored pair's
// commitment.
func (s *KeylessService) Exchange(ctx context.Context, principalID, rawIDToken string) (*domain.KeylessAccount, error) {
	exp, nonce, err := parseIDToken(rawIDToken)
	if err != nil {
		return nil, err
	}
	if !s.now().Before(exp) {
		return nil, domain.ErrTokenExpired
	}

	ekp, err := s.state.EphemeralKeyPair(ctx, principalID)
	if err != nil {
		return nil, fmt.Errorf("load ephemeral key pair: %w", err)
	}
	if ekp == nil || ekp.Expired(s.now()) {
		return nil, domain.ErrNoEphemeralKey
	}
	if nonce != ekp.Nonce {
		return nil, domain.ErrNonceMismatch
	}

	account, err := s.chain.DeriveKeylessAccount(ctx, rawIDToken, ekp)
	if err != nil {
		return nil, fmt.Errorf("derive keyless account: %w", err)
	}
	account.ExpiresAt = exp

	if err := s.state.SaveKeylessAccount(ctx, principalID, account); err != nil {
		return nil, fmt.Errorf("persist keyless account: %w", err)
	}

	s.log.Info().Str("principal_id", principalID).Str("address", account.Address).Msg("keyless account derived")
	return account, nil
}

// Restore returns the stored signing account after re-checking its token's
// exp claim against the local clock.
func (s *KeylessService) Restore(ctx context.Context, principalID string) (*domain.KeylessAccount, error) {
	account, err := s.state.KeylessAccount(ctx, principalID)
	if err != nil {
		return nil, fmt.Errorf("load keyless account: %w", err)
	}
	if account == nil {
		return nil, domain.ErrNoEphemeralKey
	}
	if !s.now().Before(account.ExpiresAt) {
		return nil, domain.ErrTokenExpired
	}
	return account, nil
}

// ensureKeyPair loads the principal's current pair, generating a new one
// only when missing or expired.
func (s *KeylessService) ensureKeyPair(ctx context.Context, principalID string) (*domain.EphemeralKeyPair, error) {
	ekp, err := s.state.EphemeralKeyPair(ctx, principalID)
	if err != nil {
		return nil, fmt.Errorf("load ephemeral key pair: %w", err)
	}
	if ekp != nil && !ekp.Expired(s.now()) {
		return ekp, nil
	}

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate ephemeral key: %w", err)
	}
	blinder := make([]byte, blinderLen)
	if _, err := rand.Read(blinder); err != nil {
		return nil, fmt.Errorf("generate blinder: %w", err)
	}

	expiresAt := s.now().Add(ephemeralTTL).UTC()
	ekp = &domain.EphemeralKeyPair{
		PublicKey:  pub,
		PrivateKey: priv,
		Blinder:    blinder,
		Nonce:      deriveNonce(pub, expiresAt, blinder),
		ExpiresAt:  expiresAt,
	}
	if err := s.state.SaveEphemeralKeyPair(ctx, principalID, ekp); err != nil {
		return nil, fmt.Errorf("persist ephemeral key pair: %w", err)
	}

	s.log.Debug().Str("principal_id", principalID).Time("expires_at", expiresAt).Msg("ephemeral key pair issued")
	return ekp, nil
}

// deriveNonce commits the ephemeral public key, its expiry, and the blinder
// into the value carried through the OAuth redirect.
func deriveNonce(pub ed25519.PublicKey, expiresAt time.Time, blinder []byte) string {
	h := sha3.New256()
	h.Write(pub)
	var expBytes [8]byte
	binary.BigEndian.PutUint64(expBytes[:], uint64(expiresAt.Unix()))
	h.Write(expBytes[:])
	h.Write(blinder)
	return hex.EncodeToString(h.Sum(nil))
}

// parseIDToken extracts the exp and nonce claims without verifying the
// signature; verification belongs to the provider and the chain
// collaborator, only freshness is checked locally.
func parseIDToken(raw string) (time.Time, string, error) {
	token, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, "", fmt.Errorf("parse id token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return time.Time{}, "", fmt.Errorf("parse id token: unexpected claims type")
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, "", domain.ErrTokenExpired
	}
	nonce, _ := claims["nonce"].(string)
	return exp.Time, nonce, nil
}
