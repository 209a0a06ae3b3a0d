package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/sq-invest/crm-service/internal/access"
	"github.com/sq-invest/crm-service/internal/api/dto"
	"github.com/sq-invest/crm-service/internal/auth"
	"github.com/sq-invest/crm-service/internal/service"
	apperrors "github.com/sq-invest/crm-service/pkg/util/errorutil"
)

// SessionHandler exposes login, logout and the signed-in actor.
type SessionHandler struct {
	authService *service.AuthService
}

// NewSessionHandler constructs handler.
func NewSessionHandler(authService *service.AuthService) *SessionHandler {
	return &SessionHandler{authService: authService}
}

// Login handles POST /auth/login.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Actor: res.Actor,
		Auth:  dto.AuthResponse{Token: res.Token, ExpiresAt: res.ExpiresAt},
	}})
}

// Logout handles POST /auth/logout.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	principal, err := principalOf(c)
	if err != nil {
		return err
	}
	h.authService.Logout(c.UserContext(), principal)
	return c.SendStatus(http.StatusNoContent)
}

// Current handles GET /session.
func (h *SessionHandler) Current(c *fiber.Ctx) error {
	principal, err := principalOf(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": principal.Actor})
}

// Update handles PUT /session.
func (h *SessionHandler) Update(c *fiber.Ctx) error {
	principal, err := principalOf(c)
	if err != nil {
		return err
	}
	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	actor, err := h.authService.UpdateProfile(c.UserContext(), principal, service.ProfileUpdate{
		Name:          req.Name,
		Role:          req.Role,
		Department:    req.Department,
		RequiresTwoFA: req.RequiresTwoFA,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": actor})
}

// Permission handles GET /session/permissions/:token.
func (h *SessionHandler) Permission(c *fiber.Ctx) error {
	principal, err := principalOf(c)
	if err != nil {
		return err
	}
	allowed := principal.Session.HasPermissionToken(c.Params("token"))
	return c.JSON(fiber.Map{"data": dto.AllowedResponse{Allowed: allowed}})
}

// Access handles GET /access/:view.
func (h *SessionHandler) Access(c *fiber.Ctx) error {
	principal, err := principalOf(c)
	if err != nil {
		return err
	}
	view := access.View(c.Params("view"))
	if !access.Known(view) {
		return apperrors.NewNotFound("view", map[string]any{"view": string(view)})
	}
	allowed := access.Allowed(view, principal.Actor.AccessLevel)
	return c.JSON(fiber.Map{"data": dto.AllowedResponse{Allowed: allowed}})
}

func principalOf(c *fiber.Ctx) (*auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return principal, nil
}
