package auth

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/spec-kit/community-service/internal/domain"
)

// PayloadFromClaims re-validates verified claims against the closed set of
// role payload shapes. A payload is well-formed iff the subject id is a
// syntactically valid UUID and the role tag is one of the known literals;
// unknown tags are rejected, never coerced.
func PayloadFromClaims(claims *Claims) (*domain.RolePayload, error) {
	if claims == nil {
		return nil, fmt.Errorf("%w: no claims", ErrMalformedPayload)
	}

	id, err := uuid.Parse(claims.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("%w: subject id is not a uuid", ErrMalformedPayload)
	}
	if !claims.Role.Known() {
		return nil, fmt.Errorf("%w: unknown role tag %q", ErrMalformedPayload, claims.Role)
	}

	return &domain.RolePayload{ID: id, Type: claims.Role}, nil
}
