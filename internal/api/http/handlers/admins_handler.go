package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/community-service/internal/api/dto"
	"github.com/spec-kit/community-service/internal/auth"
	"github.com/spec-kit/community-service/internal/service"
)

// AdminsHandler exposes admin login and account administration.
type AdminsHandler struct {
	auth     *service.AuthService
	accounts *service.AccountService
}

// NewAdminsHandler constructs handler.
func NewAdminsHandler(authService *service.AuthService, accountService *service.AccountService) *AdminsHandler {
	return &AdminsHandler{auth: authService, accounts: accountService}
}

// Login handles POST /auth/admins/login.
func (h *AdminsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	admin, pair, err := h.auth.LoginAdmin(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"admin": dto.NewAdminResponse(admin),
			"token": dto.NewTokenResponse(pair),
		},
	})
}

// CreateModerator handles POST /admin/moderators.
func (h *AdminsHandler) CreateModerator(c *fiber.Ctx) error {
	payload, ok := auth.PayloadFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.ModeratorCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password required")
	}

	moderator, err := h.accounts.CreateModerator(c.UserContext(), payload, req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewModeratorResponse(moderator)})
}

// ListModerators handles GET /admin/moderators.
func (h *AdminsHandler) ListModerators(c *fiber.Ctx) error {
	includeRetired := parseBoolQuery(c, "include_retired", false)

	moderators, err := h.accounts.ListModerators(c.UserContext(), includeRetired)
	if err != nil {
		return err
	}

	resp := make([]dto.AccountResponse, 0, len(moderators))
	for i := range moderators {
		resp = append(resp, dto.NewModeratorResponse(&moderators[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// RetireModerator handles DELETE /admin/moderators/:id.
func (h *AdminsHandler) RetireModerator(c *fiber.Ctx) error {
	payload, ok := auth.PayloadFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	if err := h.accounts.RetireModerator(c.UserContext(), payload, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "retired"}})
}

// ListMembers handles GET /admin/members.
func (h *AdminsHandler) ListMembers(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	members, err := h.accounts.ListMembers(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}

	resp := make([]dto.AccountResponse, 0, len(members))
	for i := range members {
		resp = append(resp, dto.NewMemberResponse(&members[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// RetireMember handles DELETE /admin/members/:id.
func (h *AdminsHandler) RetireMember(c *fiber.Ctx) error {
	payload, ok := auth.PayloadFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	if err := h.accounts.RetireMember(c.UserContext(), payload, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "retired"}})
}

func parseBoolQuery(c *fiber.Ctx, key string, defaultVal bool) bool {
	if val := c.Query(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func parsePagination(c *fiber.Ctx) (limit, offset int) {
	page := parseIntQuery(c, "page", 1)
	pageSize := parseIntQuery(c, "page_size", 50)
	return pageSize, (page - 1) * pageSize
}

func parseIntQuery(c *fiber.Ctx, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultVal
}
