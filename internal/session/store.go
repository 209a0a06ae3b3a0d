package session

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/sq-invest/crm-service/internal/domain"
)

// Store is the single source of truth for who is using a session and what they may do.
// It is either Unauthenticated (no actor) or Authenticated (actor held in memory and
// mirrored to its Slot).
type Store struct {
	mu     sync.RWMutex
	actor  *domain.Actor
	slot   Slot
	logger *zap.Logger
}

// NewStore builds an unauthenticated store over slot. Call Hydrate to restore
// a persisted actor.
func NewStore(slot Slot, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{slot: slot, logger: logger}
}

// Hydrate restores the actor from the slot. An unparseable record is removed and
// the store stays unauthenticated.
func (s *Store) Hydrate(ctx context.Context) {
	raw, ok, err := s.slot.Load(ctx)
	if err != nil {
		s.logger.Warn("session slot unreadable", zap.Error(err))
		return
	}
	if !ok {
		return
	}

	actor, err := decodeRecord(raw)
	if err != nil {
		s.logger.Warn("discarding corrupt session record", zap.Error(err))
		if clearErr := s.slot.Clear(ctx); clearErr != nil {
			s.logger.Warn("failed to clear corrupt session record", zap.Error(clearErr))
		}
		return
	}

	s.mu.Lock()
	s.actor = &actor
	s.mu.Unlock()
}

// decodeRecord parses a persisted record. A JSON null or an object without
// identity, tier or status is rejected like malformed JSON.
func decodeRecord(raw []byte) (domain.Actor, error) {
	var actor domain.Actor
	if err := json.Unmarshal(raw, &actor); err != nil {
		return domain.Actor{}, err
	}
	if err := actor.Validate(); err != nil {
		return domain.Actor{}, err
	}
	return actor, nil
}

// Login holds actor and persists it.
func (s *Store) Login(ctx context.Context, actor domain.Actor) {
	s.replace(ctx, actor)
}

// Update replaces the held actor with a complete record and re-persists it.
// Callers merge partial edits before calling.
func (s *Store) Update(ctx context.Context, actor domain.Actor) {
	s.replace(ctx, actor)
}

// Logout clears the actor and its persisted record. Safe to call repeatedly.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.actor = nil
	s.mu.Unlock()

	if err := s.slot.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear session record", zap.Error(err))
	}
}

// IsAuthenticated reports whether an actor is held.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.actor != nil
}

// CurrentActor returns a copy of the held actor.
func (s *Store) CurrentActor() (domain.Actor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.actor == nil {
		return domain.Actor{}, false
	}
	return s.actor.Clone(), true
}

// HasPermission is false when unauthenticated and otherwise defers to the
// actor's permission set.
func (s *Store) HasPermission(p domain.Permission) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.actor == nil {
		return false
	}
	return s.actor.Permissions.Allows(p)
}

// HasPermissionToken checks a raw permission token.
func (s *Store) HasPermissionToken(token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.actor == nil {
		return false
	}
	return s.actor.Permissions.AllowsToken(token)
}

func (s *Store) replace(ctx context.Context, actor domain.Actor) {
	held := actor.Clone()

	s.mu.Lock()
	s.actor = &held
	s.mu.Unlock()

	payload, err := json.Marshal(held)
	if err != nil {
		s.logger.Error("failed to encode session record", zap.Error(err))
		return
	}
	if err := s.slot.Save(ctx, payload); err != nil {
		s.logger.Warn("failed to persist session record", zap.String("actor_id", held.ID), zap.Error(err))
	}
}
