package service

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/rodnnnney/consensus25/internal/core/domain"
	"github.com/rodnnnney/consensus25/internal/core/ports"
)

// IdentityService resolves the auth collaborator's session token into a
// principal and its role row. Nothing else can be fetched without it.
type IdentityService struct {
	roles     ports.RoleRepository
	jwtSecret string
	log       zerolog.Logger
}

func NewIdentityService(roles ports.RoleRepository, jwtSecret string, log zerolog.Logger) *IdentityService {
	return &IdentityService{roles: roles, jwtSecret: jwtSecret, log: log}
}

// Resolve verifies the bearer token and looks up the role record.
// An absent role row is "needs onboarding", not an error; a failing lookup
// surfaces as a session-level error wrapping domain.ErrRoleLookup.
func (s *IdentityService) Resolve(ctx context.Context, bearerToken string) (*ports.Session, error) {
	if bearerToken == "" {
		return nil, domain.ErrNoSession
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(bearerToken, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrNoSession
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, domain.ErrNoSession
	}
	email, _ := claims["email"].(string)

	principal := domain.Principal{ID: sub, Email: email}

	role, err := s.roles.FindRole(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRoleLookup, err)
	}
	if role == nil {
		s.log.Debug().Str("principal_id", sub).Msg("no role record, onboarding required")
	}

	return &ports.Session{Principal: principal, Role: role}, nil
}
