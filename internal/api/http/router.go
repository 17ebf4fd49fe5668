package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/community-service/internal/api/http/handlers"
	"github.com/spec-kit/community-service/internal/auth"
	"github.com/spec-kit/community-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Members        *handlers.MembersHandler
	Moderators     *handlers.ModeratorsHandler
	Admins         *handlers.AdminsHandler
	Posts          *handlers.PostsHandler
	AuthMiddleware *auth.Middleware
}

// SecuredRoute documents a route's bearer-authentication requirement.
type SecuredRoute struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Role   string `json:"role"`
}

// securityIndex collects bearer requirements as routes are defined, so the
// documentation surface is assembled once at startup rather than per request.
type securityIndex struct {
	routes []SecuredRoute
}

func (s *securityIndex) add(method, path string, role string) {
	s.routes = append(s.routes, SecuredRoute{Method: method, Path: path, Role: role})
}

// RegisterRoutes wires HTTP routes. Protected routes are declared through
// bearer() so the security index always matches the middleware chain.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	index := &securityIndex{}
	mw := cfg.AuthMiddleware

	bearer := func(method, path string, role domain.RoleTag, handler fiber.Handler) {
		index.add(method, path, string(role))
		app.Add(method, path, mw.Require(role), handler)
	}

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	app.Post("/auth/members/register", cfg.Members.Register)
	app.Post("/auth/members/login", cfg.Members.Login)
	app.Post("/auth/moderators/login", cfg.Moderators.Login)
	app.Post("/auth/admins/login", cfg.Admins.Login)
	app.Post("/auth/refresh", cfg.Auth.Refresh)
	app.Post("/auth/password/reset/request", cfg.Auth.RequestPasswordReset)
	app.Post("/auth/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	// any authenticated role
	index.add(fiber.MethodPost, "/auth/password/change", "any")
	app.Post("/auth/password/change", mw.RequireAny(), cfg.Auth.ChangePassword)

	app.Get("/posts", cfg.Posts.ListPublished)
	bearer(fiber.MethodPost, "/posts", domain.RoleMember, cfg.Posts.Create)
	bearer(fiber.MethodGet, "/posts/mine", domain.RoleMember, cfg.Posts.ListMine)
	bearer(fiber.MethodPut, "/posts/:id", domain.RoleMember, cfg.Posts.Update)
	bearer(fiber.MethodDelete, "/posts/:id", domain.RoleMember, cfg.Posts.Delete)

	bearer(fiber.MethodPost, "/moderation/posts/:id/hide", domain.RoleModerator, cfg.Moderators.HidePost)
	bearer(fiber.MethodPost, "/moderation/posts/:id/restore", domain.RoleModerator, cfg.Moderators.RestorePost)

	bearer(fiber.MethodPost, "/admin/moderators", domain.RoleAdmin, cfg.Admins.CreateModerator)
	bearer(fiber.MethodGet, "/admin/moderators", domain.RoleAdmin, cfg.Admins.ListModerators)
	bearer(fiber.MethodDelete, "/admin/moderators/:id", domain.RoleAdmin, cfg.Admins.RetireModerator)
	bearer(fiber.MethodGet, "/admin/members", domain.RoleAdmin, cfg.Admins.ListMembers)
	bearer(fiber.MethodDelete, "/admin/members/:id", domain.RoleAdmin, cfg.Admins.RetireMember)

	app.Get("/docs/security", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": index.routes})
	})
}
