package service

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/sq-invest/crm-service/internal/auth"
	"github.com/sq-invest/crm-service/internal/directory"
	"github.com/sq-invest/crm-service/internal/domain"
	"github.com/sq-invest/crm-service/internal/events"
	"github.com/sq-invest/crm-service/internal/repository"
	apperrors "github.com/sq-invest/crm-service/pkg/util/errorutil"
)

// DirectoryService serves the roster of known actors. The roster is an in-process
// directory.Store kept in step with the account repository.
type DirectoryService struct {
	mu         sync.RWMutex
	roster     *directory.Store
	accounts   repository.AccountRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewDirectoryService creates the service with an empty roster; call Load before serving.
func NewDirectoryService(accounts repository.AccountRepository, dispatcher events.Dispatcher, logger *zap.Logger) *DirectoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	roster, _ := directory.NewStore()
	return &DirectoryService{roster: roster, accounts: accounts, dispatcher: dispatcher, logger: logger}
}

// Load replaces the roster with the accounts currently in the repository.
func (s *DirectoryService) Load(ctx context.Context) error {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return err
	}
	entries := make([]domain.DirectoryEntry, 0, len(accounts))
	for _, a := range accounts {
		entries = append(entries, a.Entry())
	}
	roster, err := directory.NewStore(entries...)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.roster = roster
	s.mu.Unlock()
	s.logger.Info("directory loaded", zap.Int("entries", len(entries)))
	return nil
}

// RegisterHandlers keeps roster entries fresh when logins or profile edits touch an account.
func (s *DirectoryService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventSessionStarted, func(ctx context.Context, e events.Event) error {
		return s.reload(ctx, e.Actor.ID)
	})
	s.dispatcher.Subscribe(events.EventDirectoryEntryUpdated, func(ctx context.Context, e events.Event) error {
		payload, ok := e.Payload.(events.DirectoryEntryPayload)
		if !ok || !payload.SelfEdit {
			return nil
		}
		return s.reload(ctx, payload.EntryID)
	})
}

// List returns the roster in order.
func (s *DirectoryService) List() []domain.DirectoryEntry {
	return s.store().List()
}

// Update replaces the entry with entry.ID. Editing the caller's own entry also
// rewrites the caller's session record with the merged actor.
func (s *DirectoryService) Update(ctx context.Context, principal *auth.Principal, entry domain.DirectoryEntry) (domain.DirectoryEntry, error) {
	roster := s.store()
	existing, err := roster.Get(entry.ID)
	if err != nil {
		return domain.DirectoryEntry{}, apperrors.NewNotFound("directory entry", map[string]any{"id": entry.ID})
	}
	entry.CreatedAt = existing.CreatedAt
	entry.LastLogin = existing.LastLogin

	account, err := s.accounts.GetByID(ctx, entry.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DirectoryEntry{}, apperrors.NewNotFound("directory entry", map[string]any{"id": entry.ID})
		}
		return domain.DirectoryEntry{}, err
	}
	account.ApplyEntry(entry)
	if err := s.accounts.Update(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateAccount) {
			return domain.DirectoryEntry{}, apperrors.NewConflict("username already in use", map[string]any{"username": entry.Username})
		}
		return domain.DirectoryEntry{}, err
	}
	if err := roster.Update(entry); err != nil {
		switch {
		case errors.Is(err, directory.ErrDuplicate):
			return domain.DirectoryEntry{}, apperrors.NewConflict("username already in use", map[string]any{"username": entry.Username})
		case errors.Is(err, directory.ErrNotFound):
			return domain.DirectoryEntry{}, apperrors.NewNotFound("directory entry", map[string]any{"id": entry.ID})
		}
		return domain.DirectoryEntry{}, err
	}

	selfEdit := principal.Actor.ID == entry.ID
	if selfEdit {
		merged := principal.Actor.MergeEntry(entry)
		principal.Session.Update(ctx, merged)
		principal.Actor = merged
	}

	s.publish(ctx, events.New(events.EventDirectoryEntryUpdated, principal.SessionID, events.ActorOf(principal.Actor),
		events.DirectoryEntryPayload{EntryID: entry.ID, Username: entry.Username}))
	return entry, nil
}

// Remove deletes the entry with id. Removing an absent entry succeeds.
func (s *DirectoryService) Remove(ctx context.Context, principal *auth.Principal, id string) error {
	entry, getErr := s.store().Get(id)
	if err := s.accounts.Delete(ctx, id); err != nil {
		return err
	}
	s.store().Remove(id)
	if getErr != nil {
		return nil
	}
	s.publish(ctx, events.New(events.EventDirectoryEntryRemoved, principal.SessionID, events.ActorOf(principal.Actor),
		events.DirectoryEntryPayload{EntryID: id, Username: entry.Username}))
	return nil
}

func (s *DirectoryService) reload(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	roster := s.store()
	account, err := s.accounts.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		roster.Remove(id)
		return nil
	}
	if err != nil {
		return err
	}
	entry := account.Entry()
	if err := roster.Update(entry); errors.Is(err, directory.ErrNotFound) {
		return roster.Add(entry)
	} else if err != nil {
		return err
	}
	return nil
}

func (s *DirectoryService) store() *directory.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roster
}

func (s *DirectoryService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
