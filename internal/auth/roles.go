package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sq-invest/crm-service/internal/access"
	"github.com/sq-invest/crm-service/internal/domain"
	apperrors "github.com/sq-invest/crm-service/pkg/util/errorutil"
)

// RequireView ensures the caller's access tier may reach view.
func RequireView(view access.View) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !access.Allowed(view, principal.Actor.AccessLevel) {
			return apperrors.NewAccessDenied(string(view))
		}
		return c.Next()
	}
}

// RequirePermission ensures the caller holds p, directly or through all_access.
func RequirePermission(p domain.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.Actor.Permissions.Allows(p) {
			return apperrors.NewForbidden("missing permission: " + string(p))
		}
		return c.Next()
	}
}
