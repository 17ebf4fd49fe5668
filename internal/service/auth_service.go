package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/community-service/internal/auth"
	"github.com/spec-kit/community-service/internal/config"
	"github.com/spec-kit/community-service/internal/domain"
	"github.com/spec-kit/community-service/internal/events"
	"github.com/spec-kit/community-service/internal/repository"
	apperrors "github.com/spec-kit/community-service/pkg/util"
)

// AuthService coordinates registration, login, refresh and password flows
// for all three roles.
type AuthService struct {
	members    repository.MemberRepository
	moderators repository.ModeratorRepository
	admins     repository.AdminRepository
	resets     repository.PasswordResetRepository
	tokens     *auth.TokenManager
	guards     auth.GuardSet
	dispatcher events.Dispatcher
	bcryptCost int
	resetTTL   time.Duration
}

// AuthDependencies encapsulates collaborator requirements for the service.
type AuthDependencies struct {
	MemberRepo        repository.MemberRepository
	ModeratorRepo     repository.ModeratorRepository
	AdminRepo         repository.AdminRepository
	PasswordResetRepo repository.PasswordResetRepository
	Guards            auth.GuardSet
	Dispatcher        events.Dispatcher
}

// NewAuthService builds the service. The token manager is created here from
// the immutable startup configuration and shared with the middleware via
// TokenManager().
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		members:    deps.MemberRepo,
		moderators: deps.ModeratorRepo,
		admins:     deps.AdminRepo,
		resets:     deps.PasswordResetRepo,
		tokens:     auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL(), cfg.Auth.RefreshTokenTTL()),
		guards:     deps.Guards,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   cfg.Auth.PasswordResetTTL(),
	}
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// RegisterMember creates a new member account and issues its first token pair.
func (s *AuthService) RegisterMember(ctx context.Context, name, email, password string) (*domain.Member, *domain.TokenPair, error) {
	if _, err := s.members.GetActiveByEmail(ctx, email); err == nil {
		return nil, nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	member := &domain.Member{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, nil, err
	}

	pair, err := s.issuePair(member.ID, domain.RoleMember)
	if err != nil {
		return nil, nil, err
	}

	s.publish(ctx, events.EventMemberRegistered, events.Actor{Role: domain.RoleMember, SubjectID: member.ID}, nil)
	return member, pair, nil
}

// LoginMember authenticates a member by email and password.
func (s *AuthService) LoginMember(ctx context.Context, email, password string) (*domain.Member, *domain.TokenPair, error) {
	member, err := s.members.GetActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, s.failLogin(ctx, domain.RoleMember, email)
		}
		return nil, nil, err
	}
	if err := auth.ComparePassword(member.PasswordHash, password); err != nil {
		return nil, nil, s.failLogin(ctx, domain.RoleMember, email)
	}

	pair, err := s.issuePair(member.ID, domain.RoleMember)
	if err != nil {
		return nil, nil, err
	}

	s.publish(ctx, events.EventLoginSucceeded, events.Actor{Role: domain.RoleMember, SubjectID: member.ID}, nil)
	return member, pair, nil
}

// LoginModerator authenticates a moderator by email and password.
func (s *AuthService) LoginModerator(ctx context.Context, email, password string) (*domain.Moderator, *domain.TokenPair, error) {
	moderator, err := s.moderators.GetActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, s.failLogin(ctx, domain.RoleModerator, email)
		}
		return nil, nil, err
	}
	if err := auth.ComparePassword(moderator.PasswordHash, password); err != nil {
		return nil, nil, s.failLogin(ctx, domain.RoleModerator, email)
	}

	pair, err := s.issuePair(moderator.ID, domain.RoleModerator)
	if err != nil {
		return nil, nil, err
	}

	s.publish(ctx, events.EventLoginSucceeded, events.Actor{Role: domain.RoleModerator, SubjectID: moderator.ID}, nil)
	return moderator, pair, nil
}

// LoginAdmin authenticates an admin by email and password.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (*domain.Admin, *domain.TokenPair, error) {
	admin, err := s.admins.GetActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, s.failLogin(ctx, domain.RoleAdmin, email)
		}
		return nil, nil, err
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, nil, s.failLogin(ctx, domain.RoleAdmin, email)
	}

	pair, err := s.issuePair(admin.ID, domain.RoleAdmin)
	if err != nil {
		return nil, nil, err
	}

	s.publish(ctx, events.EventLoginSucceeded, events.Actor{Role: domain.RoleAdmin, SubjectID: admin.ID}, nil)
	return admin, pair, nil
}

// Refresh verifies a refresh token, re-checks that the principal is still
// enrolled, and issues a brand-new pair. The old refresh token is not
// invalidated; it competes with the new one until it expires.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.tokens.Verify(refreshToken, auth.TokenRefresh)
	if err != nil {
		return nil, err
	}

	payload, err := auth.PayloadFromClaims(claims)
	if err != nil {
		return nil, err
	}

	if _, err := s.guards.Authorize(ctx, payload); err != nil {
		return nil, err
	}

	pair, err := s.issuePair(payload.ID.String(), payload.Type)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventTokenRefreshed, events.Actor{Role: payload.Type, SubjectID: payload.ID.String()}, nil)
	return pair, nil
}

// RequestPasswordReset persists a single-use reset token for a member email.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*repository.PasswordResetToken, error) {
	member, err := s.members.GetActiveByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	token := &repository.PasswordResetToken{
		MemberID:  member.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// ConfirmPasswordReset validates the reset token and updates the password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		return err
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return errors.New("reset token expired or used")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.members.UpdatePassword(ctx, token.MemberID, hash); err != nil {
		return err
	}

	s.publish(ctx, events.EventPasswordChanged, events.Actor{Role: domain.RoleMember, SubjectID: token.MemberID}, nil)
	return s.resets.MarkUsed(ctx, token.ID)
}

// ChangePassword verifies the current password of an authorized principal
// before storing a new hash. Works for any role.
func (s *AuthService) ChangePassword(ctx context.Context, payload *domain.RolePayload, currentPassword, newPassword string) error {
	id := payload.ID.String()

	var storedHash string
	switch payload.Type {
	case domain.RoleMember:
		member, err := s.members.GetActiveByID(ctx, id)
		if err != nil {
			return err
		}
		storedHash = member.PasswordHash
	case domain.RoleModerator:
		moderator, err := s.moderators.GetActiveByID(ctx, id)
		if err != nil {
			return err
		}
		storedHash = moderator.PasswordHash
	case domain.RoleAdmin:
		admin, err := s.admins.GetActiveByID(ctx, id)
		if err != nil {
			return err
		}
		storedHash = admin.PasswordHash
	default:
		return fmt.Errorf("%w: unknown role tag %q", auth.ErrMalformedPayload, payload.Type)
	}

	if err := auth.ComparePassword(storedHash, currentPassword); err != nil {
		return auth.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	switch payload.Type {
	case domain.RoleMember:
		err = s.members.UpdatePassword(ctx, id, hash)
	case domain.RoleModerator:
		err = s.moderators.UpdatePassword(ctx, id, hash)
	case domain.RoleAdmin:
		err = s.admins.UpdatePassword(ctx, id, hash)
	}
	if err != nil {
		return err
	}

	s.publish(ctx, events.EventPasswordChanged, events.Actor{Role: payload.Type, SubjectID: id}, nil)
	return nil
}

// failLogin records the audit event and returns the uniform credentials
// failure. Unknown identifier and wrong password are indistinguishable to
// the caller.
func (s *AuthService) failLogin(ctx context.Context, role domain.RoleTag, identifier string) error {
	s.publish(ctx, events.EventLoginFailed, events.Actor{},
		events.LoginFailedPayload{Role: role, Identifier: identifier})
	return auth.ErrInvalidCredentials
}

func (s *AuthService) issuePair(subjectID string, role domain.RoleTag) (*domain.TokenPair, error) {
	access, accessExp, err := s.tokens.Issue(subjectID, role, auth.TokenAccess)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.tokens.Issue(subjectID, role, auth.TokenRefresh)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{
		Access:           access,
		Refresh:          refresh,
		ExpiredAt:        accessExp,
		RefreshableUntil: refreshExp,
	}, nil
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, actor events.Actor, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
