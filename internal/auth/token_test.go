package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/community-service/internal/auth"
	"github.com/spec-kit/community-service/internal/domain"
)

const (
	testSecret = "test-signing-secret"
	testIssuer = "community-service-test"
)

func newManager(t *testing.T) *auth.TokenManager {
	t.Helper()
	return auth.NewTokenManager(testSecret, testIssuer, time.Hour, 7*24*time.Hour)
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := newManager(t)
	subjectID := uuid.NewString()

	t.Run("access token", func(t *testing.T) {
		token, expiresAt, err := tm.Issue(subjectID, domain.RoleMember, auth.TokenAccess)
		require.NoError(t, err)
		require.NotEmpty(t, token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

		claims, err := tm.Verify(token, auth.TokenAccess)
		require.NoError(t, err)
		assert.Equal(t, subjectID, claims.SubjectID)
		assert.Equal(t, domain.RoleMember, claims.Role)
		assert.Empty(t, claims.TokenType)
		assert.Equal(t, testIssuer, claims.Issuer)
	})

	t.Run("refresh token carries marker", func(t *testing.T) {
		token, expiresAt, err := tm.Issue(subjectID, domain.RoleAdmin, auth.TokenRefresh)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, 5*time.Second)

		claims, err := tm.Verify(token, auth.TokenRefresh)
		require.NoError(t, err)
		assert.Equal(t, subjectID, claims.SubjectID)
		assert.Equal(t, domain.RoleAdmin, claims.Role)
		assert.Equal(t, "refresh", claims.TokenType)
	})
}

func TestTokenManager_Verify_ForeignSecret(t *testing.T) {
	tm := newManager(t)
	other := auth.NewTokenManager("another-secret", testIssuer, time.Hour, 7*24*time.Hour)

	token, _, err := other.Issue(uuid.NewString(), domain.RoleMember, auth.TokenAccess)
	require.NoError(t, err)

	_, err = tm.Verify(token, auth.TokenAccess)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenManager_Verify_ForeignIssuer(t *testing.T) {
	tm := newManager(t)
	other := auth.NewTokenManager(testSecret, "someone-else", time.Hour, 7*24*time.Hour)

	token, _, err := other.Issue(uuid.NewString(), domain.RoleMember, auth.TokenAccess)
	require.NoError(t, err)

	_, err = tm.Verify(token, auth.TokenAccess)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenManager_Verify_Expired(t *testing.T) {
	expired := auth.NewTokenManager(testSecret, testIssuer, -time.Minute, 7*24*time.Hour)

	token, _, err := expired.Issue(uuid.NewString(), domain.RoleMember, auth.TokenAccess)
	require.NoError(t, err)

	_, err = expired.Verify(token, auth.TokenAccess)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenManager_Verify_KindMismatch(t *testing.T) {
	tm := newManager(t)
	subjectID := uuid.NewString()

	access, _, err := tm.Issue(subjectID, domain.RoleMember, auth.TokenAccess)
	require.NoError(t, err)
	refresh, _, err := tm.Issue(subjectID, domain.RoleMember, auth.TokenRefresh)
	require.NoError(t, err)

	t.Run("access token rejected as refresh", func(t *testing.T) {
		_, err := tm.Verify(access, auth.TokenRefresh)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("refresh token rejected as access", func(t *testing.T) {
		_, err := tm.Verify(refresh, auth.TokenAccess)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestTokenManager_Verify_Garbage(t *testing.T) {
	tm := newManager(t)

	_, err := tm.Verify("not-a-jwt", auth.TokenAccess)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
