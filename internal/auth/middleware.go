package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/community-service/internal/domain"
)

const payloadKey = "auth_payload"

// Middleware binds the resolver and guards into fiber handlers. Every
// protected request re-runs the full resolve-then-authorize chain; nothing
// is cached between requests.
type Middleware struct {
	resolver *Resolver
	guards   GuardSet
	logger   *zap.Logger
}

// NewMiddleware constructs middleware over the resolver and guard set.
func NewMiddleware(resolver *Resolver, guards GuardSet, logger *zap.Logger) *Middleware {
	return &Middleware{resolver: resolver, guards: guards, logger: logger}
}

// Require returns a handler admitting only live principals of the given
// role. The payload is stored in request locals for the business handler;
// on any failure the handler chain stops and the error surfaces through the
// shared error middleware as a 401/403.
func (m *Middleware) Require(role domain.RoleTag) fiber.Handler {
	guard, registered := m.guards[role]
	return func(c *fiber.Ctx) error {
		if !registered {
			return fiber.ErrInternalServerError
		}
		payload, err := m.resolver.Resolve(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			m.logger.Debug("bearer token rejected",
				zap.String("path", c.Path()),
				zap.Error(err))
			return err
		}

		payload, err = guard.Authorize(c.UserContext(), payload)
		if err != nil {
			m.logger.Debug("principal rejected",
				zap.String("path", c.Path()),
				zap.String("role", string(role)),
				zap.Error(err))
			return err
		}

		c.Locals(payloadKey, payload)
		return c.Next()
	}
}

// RequireAny admits any live principal regardless of role, dispatching to
// the guard matching the payload's own tag.
func (m *Middleware) RequireAny() fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload, err := m.resolver.Resolve(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			m.logger.Debug("bearer token rejected",
				zap.String("path", c.Path()),
				zap.Error(err))
			return err
		}

		payload, err = m.guards.Authorize(c.UserContext(), payload)
		if err != nil {
			m.logger.Debug("principal rejected",
				zap.String("path", c.Path()),
				zap.Error(err))
			return err
		}

		c.Locals(payloadKey, payload)
		return c.Next()
	}
}

// PayloadFromContext retrieves the authorized payload placed by Require.
func PayloadFromContext(c *fiber.Ctx) (*domain.RolePayload, bool) {
	val := c.Locals(payloadKey)
	if val == nil {
		return nil, false
	}
	payload, ok := val.(*domain.RolePayload)
	return payload, ok
}
