package util_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/community-service/internal/auth"
	"github.com/spec-kit/community-service/internal/domain"
	apperrors "github.com/spec-kit/community-service/pkg/util"
)

func TestToDomainError_AuthTaxonomy(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"missing credentials", auth.ErrMissingCredentials, "MISSING_CREDENTIALS", http.StatusUnauthorized},
		{"invalid token", auth.ErrInvalidToken, "INVALID_TOKEN", http.StatusUnauthorized},
		{"malformed payload", auth.ErrMalformedPayload, "MALFORMED_PAYLOAD", http.StatusUnauthorized},
		{"wrong role", &auth.WrongRoleError{Expected: domain.RoleAdmin, Actual: domain.RoleMember}, "WRONG_ROLE", http.StatusForbidden},
		{"not enrolled", auth.ErrNotEnrolled, "NOT_ENROLLED", http.StatusForbidden},
		{"invalid credentials", auth.ErrInvalidCredentials, "INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"no rows", pgx.ErrNoRows, "NOT_FOUND", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			domainErr := apperrors.ToDomainError(tc.err)
			require.NotNil(t, domainErr)
			assert.Equal(t, tc.wantCode, domainErr.Code)
			assert.Equal(t, tc.wantStatus, domainErr.HTTPStatus)
		})
	}
}

func TestToDomainError_WrappedCauseStaysInternal(t *testing.T) {
	// Signature, issuer and expiry failures all wrap ErrInvalidToken with
	// different causes; the client-facing mapping must not differ.
	signature := fmt.Errorf("%w: %v", auth.ErrInvalidToken, errors.New("signature is invalid"))
	expiry := fmt.Errorf("%w: %v", auth.ErrInvalidToken, errors.New("token is expired"))

	a := apperrors.ToDomainError(signature)
	b := apperrors.ToDomainError(expiry)

	assert.Equal(t, "INVALID_TOKEN", a.Code)
	assert.Equal(t, a.Code, b.Code)
	assert.Equal(t, a.Message, b.Message)
	assert.NotContains(t, a.Message, "signature")
}

func TestToDomainError_PassThroughAndFallback(t *testing.T) {
	t.Run("existing domain errors pass through", func(t *testing.T) {
		original := apperrors.NewForbidden("post belongs to another member")
		mapped := apperrors.ToDomainError(original)
		assert.Equal(t, "FORBIDDEN", mapped.Code)
		assert.Equal(t, "post belongs to another member", mapped.Message)
	})

	t.Run("wrapped domain errors are unwrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("handler: %w", apperrors.NewConflict("email already in use", nil))
		mapped := apperrors.ToDomainError(wrapped)
		assert.Equal(t, "CONFLICT", mapped.Code)
	})

	t.Run("unknown errors become internal", func(t *testing.T) {
		mapped := apperrors.ToDomainError(errors.New("boom"))
		assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
		assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
		assert.Equal(t, "internal server error", mapped.Message)
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, apperrors.ToDomainError(nil))
	})
}
