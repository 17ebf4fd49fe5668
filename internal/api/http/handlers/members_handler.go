package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/community-service/internal/api/dto"
	"github.com/spec-kit/community-service/internal/service"
)

// MembersHandler exposes the member join and login endpoints.
type MembersHandler struct {
	auth *service.AuthService
}

// NewMembersHandler constructs handler.
func NewMembersHandler(authService *service.AuthService) *MembersHandler {
	return &MembersHandler{auth: authService}
}

// Register handles POST /auth/members/register.
func (h *MembersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password required")
	}

	member, pair, err := h.auth.RegisterMember(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"member": dto.NewMemberResponse(member),
			"token":  dto.NewTokenResponse(pair),
		},
	})
}

// Login handles POST /auth/members/login.
func (h *MembersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	member, pair, err := h.auth.LoginMember(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"member": dto.NewMemberResponse(member),
			"token":  dto.NewTokenResponse(pair),
		},
	})
}
