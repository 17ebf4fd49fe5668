package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/community-service/internal/events"
	"github.com/spec-kit/community-service/internal/observability"
)

const (
	auditListKey = "audit:recent"
	auditListCap = 1000
)

// AuditService turns domain events into an audit trail: a structured log
// line, a metrics counter, and a capped recent-events list in redis.
// Handlers are best-effort and never fail the publishing request.
type AuditService struct {
	logger  *zap.Logger
	metrics *observability.Metrics
	redis   *redis.Client
}

// NewAuditService builds the service. A nil redis client disables the
// recent-events list.
func NewAuditService(logger *zap.Logger, metrics *observability.Metrics, redisClient *redis.Client) *AuditService {
	return &AuditService{logger: logger, metrics: metrics, redis: redisClient}
}

// RegisterHandlers subscribes the audit handler to every event type.
func (s *AuditService) RegisterHandlers(dispatcher events.Dispatcher) {
	for _, eventType := range []events.EventType{
		events.EventMemberRegistered,
		events.EventLoginSucceeded,
		events.EventLoginFailed,
		events.EventTokenRefreshed,
		events.EventPasswordChanged,
		events.EventAccountRetired,
		events.EventPostPublished,
		events.EventPostHidden,
		events.EventPostRestored,
	} {
		dispatcher.Subscribe(eventType, s.handle)
	}
}

func (s *AuditService) handle(ctx context.Context, event events.Event) error {
	s.logger.Info("audit",
		zap.String("event", string(event.Type)),
		zap.String("actor_role", string(event.Actor.Role)),
		zap.String("actor_id", event.Actor.SubjectID),
		zap.Time("at", event.Timestamp),
	)

	if event.Type == events.EventLoginFailed {
		s.metrics.RecordAuthFailure("INVALID_CREDENTIALS")
	}

	if s.redis != nil {
		raw, err := json.Marshal(event)
		if err != nil {
			return err
		}
		pipe := s.redis.Pipeline()
		pipe.LPush(ctx, auditListKey, raw)
		pipe.LTrim(ctx, auditListKey, 0, auditListCap-1)
		if _, err := pipe.Exec(ctx); err != nil {
			s.logger.Debug("audit push failed", zap.Error(err))
		}
	}
	return nil
}
