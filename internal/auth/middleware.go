package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sq-invest/crm-service/internal/domain"
	"github.com/sq-invest/crm-service/internal/session"
	apperrors "github.com/sq-invest/crm-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal is the authenticated caller: its session and the actor signed in there.
type Principal struct {
	SessionID string
	Session   *session.Store
	Actor     domain.Actor
}

// AuthMiddleware validates bearer tokens and reopens the named session.
type AuthMiddleware struct {
	tokens   *TokenManager
	sessions *session.Manager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, sessions *session.Manager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, sessions: sessions}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	store := m.sessions.Open(c.UserContext(), claims.SessionID())
	actor, ok := store.CurrentActor()
	if !ok {
		return apperrors.NewUnauthorized("session ended")
	}

	c.Locals(principalKey, &Principal{SessionID: claims.SessionID(), Session: store, Actor: actor})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
