package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/community-service/internal/auth"
	"github.com/spec-kit/community-service/internal/config"
	"github.com/spec-kit/community-service/internal/domain"
	"github.com/spec-kit/community-service/internal/events"
	"github.com/spec-kit/community-service/internal/repository/memory"
	"github.com/spec-kit/community-service/internal/service"
	apperrors "github.com/spec-kit/community-service/pkg/util"
)

type authFixture struct {
	svc        *service.AuthService
	members    *memory.Members
	moderators *memory.Moderators
	admins     *memory.Admins
	resets     *memory.Resets
	dispatcher *recordingDispatcher
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	f := &authFixture{
		members:    memory.NewMembers(),
		moderators: memory.NewModerators(),
		admins:     memory.NewAdmins(),
		resets:     memory.NewResets(),
		dispatcher: &recordingDispatcher{},
	}

	guards := auth.NewGuardSet(
		auth.NewGuard(domain.RoleMember, existsLookup(f.members.ExistsActive)),
		auth.NewGuard(domain.RoleModerator, existsLookup(f.moderators.ExistsActive)),
		auth.NewGuard(domain.RoleAdmin, existsLookup(f.admins.ExistsActive)),
	)

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "unit-test-secret",
			JWTIssuer:               "community-service-test",
			AccessTokenTTLMinutes:   60,
			RefreshTokenTTLHours:    168,
			PasswordResetTTLMinutes: 30,
			BcryptCost:              bcrypt.MinCost,
		},
	}

	f.svc = service.NewAuthService(cfg, service.AuthDependencies{
		MemberRepo:        f.members,
		ModeratorRepo:     f.moderators,
		AdminRepo:         f.admins,
		PasswordResetRepo: f.resets,
		Guards:            guards,
		Dispatcher:        f.dispatcher,
	})
	return f
}

func existsLookup(exists func(context.Context, string) (bool, error)) auth.LookupFunc {
	return func(ctx context.Context, id uuid.UUID) (bool, error) {
		return exists(ctx, id.String())
	}
}

func TestAuthService_RegisterMember(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	member, pair, err := f.svc.RegisterMember(ctx, "Dana", "dana@example.com", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, member.ID)
	assert.NotEqual(t, "s3cret", member.PasswordHash)
	require.NotNil(t, pair)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
	assert.True(t, pair.RefreshableUntil.After(pair.ExpiredAt))

	claims, err := f.svc.TokenManager().Verify(pair.Access, auth.TokenAccess)
	require.NoError(t, err)
	assert.Equal(t, member.ID, claims.SubjectID)
	assert.Equal(t, domain.RoleMember, claims.Role)

	assert.Len(t, f.dispatcher.ofType(events.EventMemberRegistered), 1)

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, _, err := f.svc.RegisterMember(ctx, "Other", "dana@example.com", "pw")
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONFLICT", domainErr.Code)
		assert.Equal(t, http.StatusConflict, domainErr.HTTPStatus)
	})
}

// unavailableMembers simulates an infrastructure failure on the email lookup.
type unavailableMembers struct {
	*memory.Members
	err error
}

func (m *unavailableMembers) GetActiveByEmail(context.Context, string) (*domain.Member, error) {
	return nil, m.err
}

func TestAuthService_RegisterMember_RepoFailurePassesThrough(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	repoErr := errors.New("connection refused")
	f.svc = service.NewAuthService(config.Config{Auth: config.AuthConfig{
		JWTSecret: "unit-test-secret",
		JWTIssuer: "community-service-test",
	}}, service.AuthDependencies{
		MemberRepo:        &unavailableMembers{Members: f.members, err: repoErr},
		ModeratorRepo:     f.moderators,
		AdminRepo:         f.admins,
		PasswordResetRepo: f.resets,
		Dispatcher:        f.dispatcher,
	})

	_, _, err := f.svc.RegisterMember(ctx, "Dana", "dana@example.com", "pw")
	// The raw error must flow through so the HTTP layer maps it to a 500,
	// not to a client-facing 4xx carrying internal detail.
	assert.ErrorIs(t, err, repoErr)
	var domainErr *apperrors.DomainError
	assert.False(t, errors.As(err, &domainErr))
}

func TestAuthService_LoginMember(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	_, _, err := f.svc.RegisterMember(ctx, "Dana", "dana@example.com", "s3cret")
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		member, pair, err := f.svc.LoginMember(ctx, "dana@example.com", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "dana@example.com", member.Email)
		assert.NotEmpty(t, pair.Access)
		assert.Len(t, f.dispatcher.ofType(events.EventLoginSucceeded), 1)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, _, wrongPass := f.svc.LoginMember(ctx, "dana@example.com", "nope")
		_, _, unknown := f.svc.LoginMember(ctx, "ghost@example.com", "s3cret")

		assert.ErrorIs(t, wrongPass, auth.ErrInvalidCredentials)
		assert.ErrorIs(t, unknown, auth.ErrInvalidCredentials)
		assert.Equal(t, wrongPass.Error(), unknown.Error())
		assert.Len(t, f.dispatcher.ofType(events.EventLoginFailed), 2)
	})

	t.Run("retired member cannot log in", func(t *testing.T) {
		member, err := f.members.GetActiveByEmail(ctx, "dana@example.com")
		require.NoError(t, err)
		require.NoError(t, f.members.SoftDelete(ctx, member.ID))

		_, _, err = f.svc.LoginMember(ctx, "dana@example.com", "s3cret")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestAuthService_LoginAdmin(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("root-pw"), bcrypt.MinCost)
	require.NoError(t, err)
	f.admins.Seed(&domain.Admin{Name: "Root", Email: "root@example.com", PasswordHash: string(hash)})

	admin, pair, err := f.svc.LoginAdmin(ctx, "root@example.com", "root-pw")
	require.NoError(t, err)
	assert.Equal(t, "root@example.com", admin.Email)

	claims, err := f.svc.TokenManager().Verify(pair.Access, auth.TokenAccess)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	member, pair, err := f.svc.RegisterMember(ctx, "Dana", "dana@example.com", "s3cret")
	require.NoError(t, err)

	t.Run("valid refresh token yields a new pair", func(t *testing.T) {
		next, err := f.svc.Refresh(ctx, pair.Refresh)
		require.NoError(t, err)
		assert.NotEmpty(t, next.Access)
		assert.NotEmpty(t, next.Refresh)

		claims, err := f.svc.TokenManager().Verify(next.Access, auth.TokenAccess)
		require.NoError(t, err)
		assert.Equal(t, member.ID, claims.SubjectID)
		assert.Len(t, f.dispatcher.ofType(events.EventTokenRefreshed), 1)
	})

	t.Run("access token is not accepted", func(t *testing.T) {
		_, err := f.svc.Refresh(ctx, pair.Access)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := f.svc.Refresh(ctx, "not-a-token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("retired account is revoked even with a valid token", func(t *testing.T) {
		require.NoError(t, f.members.SoftDelete(ctx, member.ID))

		_, err := f.svc.Refresh(ctx, pair.Refresh)
		assert.ErrorIs(t, err, auth.ErrNotEnrolled)
	})
}

func TestAuthService_PasswordReset(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	_, _, err := f.svc.RegisterMember(ctx, "Dana", "dana@example.com", "old-pw")
	require.NoError(t, err)

	token, err := f.svc.RequestPasswordReset(ctx, "dana@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token.Token)

	require.NoError(t, f.svc.ConfirmPasswordReset(ctx, token.Token, "new-pw"))

	_, _, err = f.svc.LoginMember(ctx, "dana@example.com", "old-pw")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, _, err = f.svc.LoginMember(ctx, "dana@example.com", "new-pw")
	assert.NoError(t, err)

	t.Run("token is single use", func(t *testing.T) {
		err := f.svc.ConfirmPasswordReset(ctx, token.Token, "again")
		assert.Error(t, err)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	member, _, err := f.svc.RegisterMember(ctx, "Dana", "dana@example.com", "old-pw")
	require.NoError(t, err)

	payload := &domain.RolePayload{ID: uuid.MustParse(member.ID), Type: domain.RoleMember}

	t.Run("wrong current password", func(t *testing.T) {
		err := f.svc.ChangePassword(ctx, payload, "nope", "new-pw")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("correct current password", func(t *testing.T) {
		require.NoError(t, f.svc.ChangePassword(ctx, payload, "old-pw", "new-pw"))

		_, _, err := f.svc.LoginMember(ctx, "dana@example.com", "new-pw")
		assert.NoError(t, err)
	})
}
