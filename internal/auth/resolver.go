package auth

import (
	"strings"

	"github.com/spec-kit/community-service/internal/domain"
)

// Resolver turns a raw Authorization header into an untrusted-but-well-typed
// RolePayload. It performs no database access; pair it with a Guard before
// trusting the result.
type Resolver struct {
	tokens *TokenManager
}

// NewResolver builds a resolver over the shared token manager.
func NewResolver(tokens *TokenManager) *Resolver {
	return &Resolver{tokens: tokens}
}

// Resolve extracts the bearer token, verifies signature/issuer/expiry as an
// access token, and structurally validates the claims.
func (r *Resolver) Resolve(authorization string) (*domain.RolePayload, error) {
	token, err := bearerToken(authorization)
	if err != nil {
		return nil, err
	}

	claims, err := r.tokens.Verify(token, TokenAccess)
	if err != nil {
		return nil, err
	}

	return PayloadFromClaims(claims)
}

// bearerToken enforces the exact "Bearer <token>" form.
func bearerToken(authorization string) (string, error) {
	if authorization == "" {
		return "", ErrMissingCredentials
	}
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrMissingCredentials
	}
	return parts[1], nil
}
