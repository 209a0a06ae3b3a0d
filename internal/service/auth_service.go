package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/sq-invest/crm-service/internal/auth"
	"github.com/sq-invest/crm-service/internal/config"
	"github.com/sq-invest/crm-service/internal/domain"
	"github.com/sq-invest/crm-service/internal/events"
	"github.com/sq-invest/crm-service/internal/observability"
	"github.com/sq-invest/crm-service/internal/repository"
	"github.com/sq-invest/crm-service/internal/session"
	apperrors "github.com/sq-invest/crm-service/pkg/util/errorutil"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	SessionID string
	Actor     domain.Actor
	Token     string
	ExpiresAt time.Time
}

// ProfileUpdate carries the fields an actor may change on their own session record.
type ProfileUpdate struct {
	Name          string
	Role          string
	Department    string
	RequiresTwoFA *bool
}

// AuthService coordinates login, logout and session record updates.
type AuthService struct {
	accounts   repository.AccountRepository
	sessions   *session.Manager
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	now        func() time.Time

	mu     sync.Mutex
	leases map[string]lease
}

// lease records a session opened by this process and when its token stops working.
type lease struct {
	actor     events.Actor
	expiresAt time.Time
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	Accounts   repository.AccountRepository
	Sessions   *session.Manager
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		accounts:   deps.Accounts,
		sessions:   deps.Sessions,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
		now:        time.Now,
		leases:     make(map[string]lease),
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Login matches handle and secret against the known accounts and opens a new session.
// A failed attempt leaves every session untouched.
func (s *AuthService) Login(ctx context.Context, handle, secret string) (*LoginResult, error) {
	account, err := s.accounts.GetByUsername(ctx, handle)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.metrics.RecordLogin(observability.LoginRejected)
			return nil, apperrors.NewInvalidCredentials()
		}
		return nil, err
	}
	if err := auth.CompareSecret(account.SecretHash, secret); err != nil {
		s.metrics.RecordLogin(observability.LoginRejected)
		return nil, apperrors.NewInvalidCredentials()
	}
	if account.Status != domain.ActorStatusActive {
		s.metrics.RecordLogin(observability.LoginInactive)
		return nil, apperrors.NewAccountInactive()
	}

	loggedInAt := s.now().UTC().Truncate(time.Second)
	if err := s.accounts.TouchLastLogin(ctx, account.ID, loggedInAt); err != nil {
		s.logger.Warn("failed to record last login", zap.String("account_id", account.ID), zap.Error(err))
	}
	actor := account.Actor()
	actor.LastLogin = &loggedInAt

	sessionID := s.sessions.NewSessionID()
	token, exp, err := s.tokenMgr.GenerateToken(sessionID, actor.ID)
	if err != nil {
		return nil, err
	}
	s.sessions.Open(ctx, sessionID).Login(ctx, actor)
	s.mu.Lock()
	s.leases[sessionID] = lease{actor: events.ActorOf(actor), expiresAt: exp}
	s.mu.Unlock()
	s.metrics.RecordLogin(observability.LoginSucceeded)
	s.publish(ctx, events.New(events.EventSessionStarted, sessionID, events.ActorOf(actor), actor))

	return &LoginResult{SessionID: sessionID, Actor: actor, Token: token, ExpiresAt: exp}, nil
}

// Logout ends the caller's session. Repeated calls are harmless.
func (s *AuthService) Logout(ctx context.Context, principal *auth.Principal) {
	wasSignedIn := principal.Session.IsAuthenticated()
	principal.Session.Logout(ctx)
	s.mu.Lock()
	delete(s.leases, principal.SessionID)
	s.mu.Unlock()
	if !wasSignedIn {
		return
	}
	s.metrics.RecordLogout()
	s.publish(ctx, events.New(events.EventSessionEnded, principal.SessionID, events.ActorOf(principal.Actor),
		events.SessionEndedPayload{Reason: events.SessionEndLogout}))
}

// ReapExpired ends every session whose token has expired without a logout. The
// persisted record is deleted and session_ended is published so per-session
// state is released. It returns the number of sessions ended.
func (s *AuthService) ReapExpired(ctx context.Context) int {
	now := s.now()
	expired := make(map[string]lease)
	s.mu.Lock()
	for sid, l := range s.leases {
		if !now.Before(l.expiresAt) {
			expired[sid] = l
			delete(s.leases, sid)
		}
	}
	s.mu.Unlock()

	for sid, l := range expired {
		if err := s.sessions.End(ctx, sid); err != nil {
			s.logger.Warn("failed to clear expired session", zap.String("session_id", sid), zap.Error(err))
		}
		s.metrics.RecordLogout()
		s.publish(ctx, events.New(events.EventSessionEnded, sid, l.actor,
			events.SessionEndedPayload{Reason: events.SessionEndExpired}))
	}
	return len(expired)
}

// OpenSessions returns the number of sessions this process has not yet seen end.
func (s *AuthService) OpenSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.leases)
}

// UpdateProfile merges update into the signed-in actor, replaces the session record
// with the result and mirrors the change onto the account.
func (s *AuthService) UpdateProfile(ctx context.Context, principal *auth.Principal, update ProfileUpdate) (domain.Actor, error) {
	actor := principal.Actor.Clone()
	if update.Name != "" {
		actor.Name = update.Name
	}
	if update.Role != "" {
		actor.Role = update.Role
	}
	if update.Department != "" {
		actor.Department = update.Department
	}
	if update.RequiresTwoFA != nil {
		actor.RequiresTwoFA = *update.RequiresTwoFA
	}

	account, err := s.accounts.GetByID(ctx, actor.ID)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// Account removed from the roster; the session record is still the caller's own.
	case err != nil:
		return domain.Actor{}, err
	default:
		account.Name = actor.Name
		account.Role = actor.Role
		account.Department = actor.Department
		account.RequiresTwoFA = actor.RequiresTwoFA
		if err := s.accounts.Update(ctx, account); err != nil {
			return domain.Actor{}, err
		}
		s.publish(ctx, events.New(events.EventDirectoryEntryUpdated, principal.SessionID, events.ActorOf(actor),
			events.DirectoryEntryPayload{EntryID: account.ID, Username: account.Username, SelfEdit: true}))
	}

	principal.Session.Update(ctx, actor)
	principal.Actor = actor
	return actor, nil
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
