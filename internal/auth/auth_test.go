package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sq-invest/crm-service/internal/access"
	"github.com/sq-invest/crm-service/internal/domain"
	"github.com/sq-invest/crm-service/internal/session"
	apperrors "github.com/sq-invest/crm-service/pkg/util/errorutil"
)

func TestHashAndCompareSecret(t *testing.T) {
	hash, err := HashSecret("truckers123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NoError(t, CompareSecret(hash, "truckers123"))
	assert.Error(t, CompareSecret(hash, "truckers124"))
	assert.ErrorIs(t, CompareSecret("", "anything"), bcrypt.ErrMismatchedHashAndPassword)
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	token, exp, err := tm.GenerateToken("session-1", "actor-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), exp, time.Minute)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", claims.SessionID())
	assert.Equal(t, "actor-1", claims.ActorID)
}

func TestTokenRejectsForeignSecretAndExpiry(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	token, _, err := tm.GenerateToken("session-1", "actor-1")
	require.NoError(t, err)

	_, err = NewTokenManager("other", 5).ParseToken(token)
	assert.Error(t, err)

	later := NewTokenManager("secret", 5)
	later.now = func() time.Time { return time.Now().Add(time.Hour) }
	_, err = later.ParseToken(token)
	assert.Error(t, err)

	_, _, err = tm.GenerateToken("", "actor-1")
	assert.Error(t, err)
}

type harness struct {
	app      *fiber.App
	tokens   *TokenManager
	sessions *session.Manager
	backend  *session.MemoryBackend
}

func newHarness(t *testing.T) harness {
	t.Helper()
	tokens := NewTokenManager("secret", 5)
	backend := session.NewMemoryBackend()
	sessions := session.NewManager("", session.MemorySlots(backend, 0), nil)
	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.SendStatus(fe.Code)
		}
		return c.SendStatus(apperrors.ToDomainError(err).HTTPStatus)
	}})

	mw := NewAuthMiddleware(tokens, sessions)
	ok := func(c *fiber.Ctx) error {
		p, found := PrincipalFromContext(c)
		if !found {
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.SendString(p.Actor.Username)
	}
	app.Get("/me", mw.Handle, ok)
	app.Get("/settings", mw.Handle, RequireView(access.ViewSettings), ok)
	app.Get("/roles", mw.Handle, RequireView(access.ViewSettingsRoles), ok)
	app.Get("/reports", mw.Handle, RequirePermission(domain.PermissionReports), ok)
	return harness{app: app, tokens: tokens, sessions: sessions, backend: backend}
}

func (h harness) signIn(t *testing.T, actor domain.Actor) string {
	t.Helper()
	sid := h.sessions.NewSessionID()
	h.sessions.Open(context.Background(), sid).Login(context.Background(), actor)
	token, _, err := h.tokens.GenerateToken(sid, actor.ID)
	require.NoError(t, err)
	return token
}

func (h harness) get(t *testing.T, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := h.app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func managementActor() domain.Actor {
	return domain.Actor{
		ID:          "u-mgmt",
		Username:    "ed",
		Name:        "Ed",
		AccessLevel: domain.AccessTierManagement,
		Permissions: domain.Permissions(domain.PermissionContacts, domain.PermissionReports),
		Status:      domain.ActorStatusActive,
	}
}

func TestMiddlewareRequiresLiveSession(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, http.StatusUnauthorized, h.get(t, "/me", ""))
	assert.Equal(t, http.StatusUnauthorized, h.get(t, "/me", "garbage"))

	token := h.signIn(t, managementActor())
	assert.Equal(t, http.StatusOK, h.get(t, "/me", token))

	claims, err := h.tokens.ParseToken(token)
	require.NoError(t, err)
	h.sessions.Open(context.Background(), claims.SessionID()).Logout(context.Background())
	assert.Equal(t, http.StatusUnauthorized, h.get(t, "/me", token))
}

func TestMiddlewareRejectsEmptySessionRecord(t *testing.T) {
	h := newHarness(t)
	for _, raw := range []string{"null", "{}"} {
		sid := h.sessions.NewSessionID()
		slot := h.backend.Slot(session.SlotKey("", sid))
		require.NoError(t, slot.Save(context.Background(), []byte(raw)))
		token, _, err := h.tokens.GenerateToken(sid, "u-ghost")
		require.NoError(t, err)

		assert.Equal(t, http.StatusUnauthorized, h.get(t, "/me", token), raw)
		_, ok, err := slot.Load(context.Background())
		require.NoError(t, err)
		assert.False(t, ok, "record %s should be cleared", raw)
	}
}

func TestRequireViewUsesAccessTier(t *testing.T) {
	h := newHarness(t)
	token := h.signIn(t, managementActor())
	assert.Equal(t, http.StatusOK, h.get(t, "/settings", token))
	assert.Equal(t, http.StatusForbidden, h.get(t, "/roles", token))
}

func TestRequirePermission(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, http.StatusOK, h.get(t, "/reports", h.signIn(t, managementActor())))

	agent := managementActor()
	agent.ID = "u-agent"
	agent.Permissions = domain.Permissions(domain.PermissionContacts)
	assert.Equal(t, http.StatusForbidden, h.get(t, "/reports", h.signIn(t, agent)))

	board := managementActor()
	board.ID = "u-board"
	board.Permissions = domain.AllAccess()
	assert.Equal(t, http.StatusOK, h.get(t, "/reports", h.signIn(t, board)))
}
