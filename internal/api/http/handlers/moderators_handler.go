package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/community-service/internal/api/dto"
	"github.com/spec-kit/community-service/internal/auth"
	"github.com/spec-kit/community-service/internal/service"
)

// ModeratorsHandler exposes moderator login and moderation actions.
type ModeratorsHandler struct {
	auth  *service.AuthService
	posts *service.PostService
}

// NewModeratorsHandler constructs handler.
func NewModeratorsHandler(authService *service.AuthService, postService *service.PostService) *ModeratorsHandler {
	return &ModeratorsHandler{auth: authService, posts: postService}
}

// Login handles POST /auth/moderators/login.
func (h *ModeratorsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	moderator, pair, err := h.auth.LoginModerator(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"moderator": dto.NewModeratorResponse(moderator),
			"token":     dto.NewTokenResponse(pair),
		},
	})
}

// HidePost handles POST /moderation/posts/:id/hide.
func (h *ModeratorsHandler) HidePost(c *fiber.Ctx) error {
	payload, ok := auth.PayloadFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	if err := h.posts.Hide(c.UserContext(), payload, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "hidden"}})
}

// RestorePost handles POST /moderation/posts/:id/restore.
func (h *ModeratorsHandler) RestorePost(c *fiber.Ctx) error {
	payload, ok := auth.PayloadFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	if err := h.posts.Restore(c.UserContext(), payload, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "published"}})
}
