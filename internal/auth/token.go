package auth

import (
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/community-service/internal/domain"
)

// TokenKind separates short-lived access tokens from long-lived refresh
// tokens. Both are signed with the same secret, so the kind is carried as a
// claim and checked on every verification.
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

// refreshMarker is the tokenType claim value stamped on refresh tokens.
// Access tokens carry no tokenType claim at all.
const refreshMarker = "refresh"

// Claims describes the JWT payload.
type Claims struct {
	SubjectID string         `json:"id"`
	Role      domain.RoleTag `json:"type"`
	TokenType string         `json:"tokenType,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies JWTs under a single shared secret and
// issuer. It holds no per-request state and is safe for concurrent use.
type TokenManager struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager builds a manager. Zero TTLs fall back to one hour for
// access tokens and seven days for refresh tokens.
func NewTokenManager(secret, issuer string, accessTTL, refreshTTL time.Duration) *TokenManager {
	if accessTTL == 0 {
		accessTTL = time.Hour
	}
	if refreshTTL == 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenManager{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// TTL returns the lifetime configured for the given kind.
func (tm *TokenManager) TTL(kind TokenKind) time.Duration {
	if kind == TokenRefresh {
		return tm.refreshTTL
	}
	return tm.accessTTL
}

// Issue signs a token of the given kind for the subject and returns the
// token string together with its expiry.
func (tm *TokenManager) Issue(subjectID string, role domain.RoleTag, kind TokenKind) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.TTL(kind))

	claims := &Claims{
		SubjectID: subjectID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tm.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	if kind == TokenRefresh {
		claims.TokenType = refreshMarker
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a token of the expected kind. Every failure
// (bad signature, wrong issuer, expired, unexpected signing method, kind
// mismatch) comes back as ErrInvalidToken. The underlying cause is wrapped
// for logging but must never be shown to clients.
func (tm *TokenManager) Verify(tokenStr string, kind TokenKind) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{},
		func(token *jwt.Token) (any, error) {
			return tm.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tm.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("%w: unusable claims", ErrInvalidToken)
	}

	switch kind {
	case TokenRefresh:
		if claims.TokenType != refreshMarker {
			return nil, fmt.Errorf("%w: access token presented as refresh", ErrInvalidToken)
		}
	default:
		if claims.TokenType != "" {
			return nil, fmt.Errorf("%w: refresh token presented as access", ErrInvalidToken)
		}
	}
	return claims, nil
}
