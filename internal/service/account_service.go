package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/community-service/internal/auth"
	"github.com/spec-kit/community-service/internal/domain"
	"github.com/spec-kit/community-service/internal/events"
	"github.com/spec-kit/community-service/internal/repository"
	apperrors "github.com/spec-kit/community-service/pkg/util"
)

// AccountService implements the admin-facing account providers: moderator
// provisioning and account retirement. Retirement sets the liveness marker,
// which revokes the account's outstanding tokens on their next guard check.
type AccountService struct {
	members    repository.MemberRepository
	moderators repository.ModeratorRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAccountService builds the service.
func NewAccountService(members repository.MemberRepository, moderators repository.ModeratorRepository, dispatcher events.Dispatcher, bcryptCost int) *AccountService {
	return &AccountService{
		members:    members,
		moderators: moderators,
		dispatcher: dispatcher,
		bcryptCost: bcryptCost,
	}
}

// CreateModerator provisions a new moderator account.
func (s *AccountService) CreateModerator(ctx context.Context, admin *domain.RolePayload, name, email, password string) (*domain.Moderator, error) {
	if _, err := s.moderators.GetActiveByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already in use", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	moderator := &domain.Moderator{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.moderators.Create(ctx, moderator); err != nil {
		return nil, err
	}
	return moderator, nil
}

// ListModerators returns moderator accounts.
func (s *AccountService) ListModerators(ctx context.Context, includeRetired bool) ([]domain.Moderator, error) {
	return s.moderators.List(ctx, includeRetired)
}

// ListMembers returns active member accounts.
func (s *AccountService) ListMembers(ctx context.Context, limit, offset int) ([]domain.Member, error) {
	return s.members.List(ctx, limit, offset)
}

// RetireModerator soft-deletes a moderator account.
func (s *AccountService) RetireModerator(ctx context.Context, admin *domain.RolePayload, id string) error {
	if err := s.moderators.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("moderator", map[string]any{"id": id})
		}
		return err
	}

	s.publishRetired(ctx, admin, domain.RoleModerator, id)
	return nil
}

// RetireMember soft-deletes a member account.
func (s *AccountService) RetireMember(ctx context.Context, admin *domain.RolePayload, id string) error {
	if err := s.members.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("member", map[string]any{"id": id})
		}
		return err
	}

	s.publishRetired(ctx, admin, domain.RoleMember, id)
	return nil
}

func (s *AccountService) publishRetired(ctx context.Context, admin *domain.RolePayload, role domain.RoleTag, id string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAccountRetired,
		Actor:     events.Actor{Role: admin.Type, SubjectID: admin.ID.String()},
		Timestamp: time.Now(),
		Payload:   events.AccountRetiredPayload{Role: role, SubjectID: id},
	})
}
