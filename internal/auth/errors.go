package auth

import (
	"errors"
	"fmt"

	"github.com/spec-kit/community-service/internal/domain"
)

// Authentication failures are terminal for the request. The token errors are
// deliberately undifferentiated toward clients (bad signature, wrong issuer
// and expiry all surface as ErrInvalidToken); granularity lives only in the
// wrapped cause, which stays in server logs.
var (
	// ErrMissingCredentials means the Authorization header was absent or not
	// of the exact form "Bearer <token>".
	ErrMissingCredentials = errors.New("missing or malformed authorization header")

	// ErrInvalidToken covers bad signature, wrong issuer, expiry and
	// access/refresh kind mismatch.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMalformedPayload means the claims did not match any known role shape.
	ErrMalformedPayload = errors.New("malformed token payload")

	// ErrNotEnrolled means the principal row is absent or soft-deleted.
	ErrNotEnrolled = errors.New("account not enrolled")

	// ErrInvalidCredentials covers both unknown identifier and wrong
	// password so login cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// WrongRoleError is returned when a payload's role tag does not match the
// guard it was presented to. The message names both roles for debuggability;
// callers must branch on the type, not the text.
type WrongRoleError struct {
	Expected domain.RoleTag
	Actual   domain.RoleTag
}

func (e *WrongRoleError) Error() string {
	return fmt.Sprintf("wrong role: expected %q, got %q", e.Expected, e.Actual)
}

// IsWrongRole reports whether err is a WrongRoleError.
func IsWrongRole(err error) bool {
	var wre *WrongRoleError
	return errors.As(err, &wre)
}
