package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sq-invest/crm-service/internal/auth"
	"github.com/sq-invest/crm-service/internal/config"
	"github.com/sq-invest/crm-service/internal/domain"
	"github.com/sq-invest/crm-service/internal/events"
	"github.com/sq-invest/crm-service/internal/observability"
	"github.com/sq-invest/crm-service/internal/pipeline"
	"github.com/sq-invest/crm-service/internal/repository"
	"github.com/sq-invest/crm-service/internal/seed"
	"github.com/sq-invest/crm-service/internal/session"
	apperrors "github.com/sq-invest/crm-service/pkg/util/errorutil"
)

type env struct {
	accounts  repository.AccountRepository
	sessions  *session.Manager
	auth      *AuthService
	directory *DirectoryService
	pipeline  *PipelineService
	activity  *ActivityService
	boards    *pipeline.Registry
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()

	accounts := repository.NewMemoryAccountRepository()
	require.NoError(t, seed.Apply(ctx, accounts, bcrypt.MinCost, logger))

	cfg := config.Config{
		Auth:     config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 5, BcryptCost: bcrypt.MinCost},
		Activity: config.ActivityConfig{FeedSize: 3},
	}
	dispatcher := events.NewInMemoryDispatcher(logger)
	metrics := observability.NewMetrics()
	sessions := session.NewManager("", session.MemorySlots(session.NewMemoryBackend(), 0), logger)
	boards := pipeline.NewRegistry(seed.Contacts)

	e := &env{
		accounts: accounts,
		sessions: sessions,
		auth: NewAuthService(cfg, AuthDependencies{
			Accounts: accounts, Sessions: sessions, Dispatcher: dispatcher, Metrics: metrics, Logger: logger,
		}),
		directory: NewDirectoryService(accounts, dispatcher, logger),
		pipeline:  NewPipelineService(boards, dispatcher, metrics, logger),
		activity:  NewActivityService(dispatcher, logger, cfg.Activity),
		boards:    boards,
	}
	require.NoError(t, e.directory.Load(ctx))
	e.directory.RegisterHandlers()
	e.pipeline.RegisterHandlers()
	e.activity.RegisterHandlers()
	return e
}

func (e *env) login(t *testing.T, handle, secret string) *auth.Principal {
	t.Helper()
	res, err := e.auth.Login(context.Background(), handle, secret)
	require.NoError(t, err)
	store := e.sessions.Open(context.Background(), res.SessionID)
	actor, ok := store.CurrentActor()
	require.True(t, ok)
	return &auth.Principal{SessionID: res.SessionID, Session: store, Actor: actor}
}

func errCode(err error) string {
	return apperrors.ToDomainError(err).Code
}

func entryByHandle(t *testing.T, entries []domain.DirectoryEntry, handle string) domain.DirectoryEntry {
	t.Helper()
	for _, e := range entries {
		if e.Username == handle {
			return e
		}
	}
	t.Fatalf("no entry for %s", handle)
	return domain.DirectoryEntry{}
}

func TestLoginOpensSession(t *testing.T) {
	e := newEnv(t)
	res, err := e.auth.Login(context.Background(), "truckers", "truckers123")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, `Alex "Big Truck" Foster`, res.Actor.Name)
	assert.True(t, res.Actor.Permissions.IsAllAccess())
	require.NotNil(t, res.Actor.LastLogin)

	claims, err := e.auth.TokenManager().ParseToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.SessionID, claims.SessionID())

	store := e.sessions.Open(context.Background(), res.SessionID)
	assert.True(t, store.IsAuthenticated())
	assert.True(t, store.HasPermissionToken("anything-at-all"))

	entry := entryByHandle(t, e.directory.List(), "truckers")
	require.NotNil(t, entry.LastLogin)
	assert.True(t, entry.LastLogin.Equal(*res.Actor.LastLogin))

	feed := e.activity.Recent(0)
	require.Len(t, feed, 1)
	assert.Equal(t, domain.ActivitySession, feed[0].Type)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	e := newEnv(t)
	_, err := e.auth.Login(context.Background(), "truckers", "wrong")
	assert.Equal(t, "INVALID_CREDENTIALS", errCode(err))
	assert.Equal(t, "Invalid username or password. Please try again.", apperrors.ToDomainError(err).Message)

	_, err = e.auth.Login(context.Background(), "nobody", "truckers123")
	assert.Equal(t, "INVALID_CREDENTIALS", errCode(err))
	assert.Empty(t, e.activity.Recent(0))
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	account, err := e.accounts.GetByUsername(ctx, "squire")
	require.NoError(t, err)
	account.Status = domain.ActorStatusInactive
	require.NoError(t, e.accounts.Update(ctx, account))

	_, err = e.auth.Login(ctx, "squire", "squire123")
	assert.Equal(t, "ACCOUNT_INACTIVE", errCode(err))

	_, err = e.auth.Login(ctx, "squire", "wrong")
	assert.Equal(t, "INVALID_CREDENTIALS", errCode(err))
}

func TestFailedLoginLeavesOtherSessionsAlone(t *testing.T) {
	e := newEnv(t)
	p := e.login(t, "ed", "ed123")
	_, err := e.auth.Login(context.Background(), "ed", "nope")
	require.Error(t, err)
	assert.True(t, e.sessions.Open(context.Background(), p.SessionID).IsAuthenticated())
}

func TestLogoutEndsSessionAndDropsBoard(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.login(t, "m1", "m1123")

	_, err := e.pipeline.Move(ctx, p, MoveRequest{ContactID: "5", Source: "prospects", Destination: "clients"})
	require.NoError(t, err)

	e.auth.Logout(ctx, p)
	e.auth.Logout(ctx, p)
	assert.False(t, e.sessions.Open(ctx, p.SessionID).IsAuthenticated())

	fresh := e.pipeline.Columns(p, pipeline.Criteria{})
	found := false
	for _, c := range fresh.Prospects {
		if c.ID == "5" {
			found = true
			assert.Equal(t, domain.StatusLegal, c.Status)
		}
	}
	assert.True(t, found)
}

func TestReapExpiredEndsAbandonedSessions(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	abandoned := e.login(t, "m1", "m1123")
	_, err := e.pipeline.Move(ctx, abandoned, MoveRequest{ContactID: "5", Source: "prospects", Destination: "clients"})
	require.NoError(t, err)
	require.Equal(t, 1, e.boards.Len())

	assert.Equal(t, 0, e.auth.ReapExpired(ctx), "tokens are still valid")

	assert.Equal(t, 1, e.auth.OpenSessions())

	e.auth.now = func() time.Time { return time.Now().Add(6 * time.Minute) }
	assert.Equal(t, 1, e.auth.ReapExpired(ctx))
	assert.Equal(t, 0, e.auth.ReapExpired(ctx))
	assert.Equal(t, 0, e.auth.OpenSessions())
	assert.False(t, e.sessions.Open(ctx, abandoned.SessionID).IsAuthenticated())
	assert.Equal(t, 0, e.boards.Len())

	feed := e.activity.Recent(1)
	require.Len(t, feed, 1)
	assert.Equal(t, "Session expired", feed[0].Title)
}

func TestLogoutReleasesLease(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.login(t, "ed", "ed123")
	e.auth.Logout(ctx, p)

	e.auth.now = func() time.Time { return time.Now().Add(6 * time.Minute) }
	assert.Equal(t, 0, e.auth.OpenSessions())
	assert.Equal(t, 0, e.auth.ReapExpired(ctx))
}

func TestUpdateProfileRewritesSession(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.login(t, "ed", "ed123")

	updated, err := e.auth.UpdateProfile(ctx, p, ProfileUpdate{Name: "Edward"})
	require.NoError(t, err)
	assert.Equal(t, "Edward", updated.Name)
	assert.Equal(t, "Business Development Manager", updated.Role)

	reopened, ok := e.sessions.Open(ctx, p.SessionID).CurrentActor()
	require.True(t, ok)
	assert.True(t, reopened.Equal(updated))
	assert.Equal(t, "Edward", entryByHandle(t, e.directory.List(), "ed").Name)
}

func TestDirectorySelfEditUpdatesSession(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.login(t, "admin", "admin123")

	entry := entryByHandle(t, e.directory.List(), "admin")
	entry.Name = "Sys Admin"
	entry.Department = "Operations"
	_, err := e.directory.Update(ctx, p, entry)
	require.NoError(t, err)

	actor, ok := e.sessions.Open(ctx, p.SessionID).CurrentActor()
	require.True(t, ok)
	assert.Equal(t, "Sys Admin", actor.Name)
	assert.Equal(t, "Operations", actor.Department)
	assert.True(t, actor.Permissions.IsAllAccess())
	assert.Equal(t, "Sys Admin", p.Actor.Name)
}

func TestDirectoryEditOfOtherLeavesSession(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.login(t, "truckers", "truckers123")

	entry := entryByHandle(t, e.directory.List(), "squire")
	entry.Role = "Head of Sales"
	saved, err := e.directory.Update(ctx, p, entry)
	require.NoError(t, err)
	assert.Equal(t, "Head of Sales", saved.Role)

	actor, _ := e.sessions.Open(ctx, p.SessionID).CurrentActor()
	assert.Equal(t, "Managing Director", actor.Role)

	account, err := e.accounts.GetByUsername(ctx, "squire")
	require.NoError(t, err)
	assert.Equal(t, "Head of Sales", account.Role)
}

func TestDirectoryUpdateErrors(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.login(t, "truckers", "truckers123")

	_, err := e.directory.Update(ctx, p, domain.DirectoryEntry{ID: "missing", Username: "ghost"})
	assert.Equal(t, "NOT_FOUND", errCode(err))

	entry := entryByHandle(t, e.directory.List(), "squire")
	entry.Username = "m1"
	_, err = e.directory.Update(ctx, p, entry)
	assert.Equal(t, "CONFLICT", errCode(err))
}

func TestDirectoryRemoveIsIdempotent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.login(t, "truckers", "truckers123")

	require.NoError(t, e.directory.Remove(ctx, p, "3"))
	require.NoError(t, e.directory.Remove(ctx, p, "3"))
	assert.Len(t, e.directory.List(), 4)

	_, err := e.auth.Login(ctx, "m1", "m1123")
	assert.Equal(t, "INVALID_CREDENTIALS", errCode(err))
}

func TestPipelineMove(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.login(t, "squire", "squire123")

	move, err := e.pipeline.Move(ctx, p, MoveRequest{ContactID: "5", Source: "prospects", Destination: "clients"})
	require.NoError(t, err)
	assert.True(t, move.Changed)
	assert.Equal(t, domain.StatusLegal, move.FromStatus)
	assert.Equal(t, domain.StatusClients, move.ToStatus)

	move, err = e.pipeline.Move(ctx, p, MoveRequest{ContactID: "5", Source: "clients", Destination: ""})
	require.NoError(t, err)
	assert.False(t, move.Changed)

	move, err = e.pipeline.Move(ctx, p, MoveRequest{ContactID: "5", Source: "clients", Destination: "sidebar"})
	require.NoError(t, err)
	assert.False(t, move.Changed)
	assert.Equal(t, domain.StatusClients, move.Contact.Status)

	_, err = e.pipeline.Move(ctx, p, MoveRequest{ContactID: "nope", Destination: "leads"})
	assert.Equal(t, "NOT_FOUND", errCode(err))

	other := e.login(t, "ed", "ed123")
	for _, c := range e.pipeline.Columns(other, pipeline.Criteria{}).Prospects {
		if c.ID == "5" {
			assert.Equal(t, domain.StatusLegal, c.Status)
		}
	}
}

func TestPipelineBulkAndAdd(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.login(t, "squire", "squire123")

	_, err := e.pipeline.Bulk(ctx, p, []string{"1"}, "explode")
	assert.Equal(t, "VALIDATION_FAILED", errCode(err))

	affected, err := e.pipeline.Bulk(ctx, p, []string{"1", "9", "missing"}, "delete")
	require.NoError(t, err)
	assert.Equal(t, 2, affected)
	assert.Equal(t, 7, e.pipeline.Stats(p).Total)

	c, err := e.pipeline.AddContact(ctx, p, pipeline.ContactInput{Name: "Nina Patel", Email: "nina@example.com"}, "off-plan")
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityHigh, c.Priority)
	assert.Equal(t, 80, c.LeadScore)
	assert.Equal(t, 8, e.pipeline.Stats(p).Total)

	_, err = e.pipeline.AddContact(ctx, p, pipeline.ContactInput{Name: "x", Email: "y"}, "nope")
	assert.Equal(t, "VALIDATION_FAILED", errCode(err))
	_, err = e.pipeline.AddContact(ctx, p, pipeline.ContactInput{Name: " "}, "")
	assert.Equal(t, "VALIDATION_FAILED", errCode(err))

	edited, err := e.pipeline.UpdateContact(p, c.ID, func(current domain.Contact) domain.Contact {
		current.Notes = "called back"
		return current
	})
	require.NoError(t, err)
	assert.Equal(t, "called back", edited.Notes)
	assert.Equal(t, domain.PriorityHigh, edited.Priority)
	_, err = e.pipeline.UpdateContact(p, "missing", func(c domain.Contact) domain.Contact { return c })
	assert.Equal(t, "NOT_FOUND", errCode(err))
}

func TestActivityFeedIsBoundedNewestFirst(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.login(t, "squire", "squire123")
	for _, dest := range []string{"clients", "leads", "prospects"} {
		_, err := e.pipeline.Move(ctx, p, MoveRequest{ContactID: "1", Destination: dest})
		require.NoError(t, err)
	}

	feed := e.activity.Recent(0)
	require.Len(t, feed, 3)
	assert.Equal(t, "Emma Davies moved from Fresh Leads to KOL", feed[0].Description)
	assert.Equal(t, domain.ActivityPipeline, feed[2].Type)
	assert.Len(t, e.activity.Recent(1), 1)
}
