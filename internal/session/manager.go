package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SlotFactory resolves the persistence slot for a key.
type SlotFactory func(key string) Slot

// Manager opens per-session stores over a shared storage backend.
type Manager struct {
	namespace string
	slots     SlotFactory
	logger    *zap.Logger
}

// NewManager builds a manager. An empty namespace falls back to Namespace.
func NewManager(namespace string, slots SlotFactory, logger *zap.Logger) *Manager {
	if namespace == "" {
		namespace = Namespace
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{namespace: namespace, slots: slots, logger: logger}
}

// RedisSlots returns a factory producing Redis-backed slots.
func RedisSlots(client *redis.Client, ttl time.Duration) SlotFactory {
	return func(key string) Slot {
		return NewRedisSlot(client, key, ttl)
	}
}

// MemorySlots returns a factory producing slots in backend that expire after ttl.
func MemorySlots(backend *MemoryBackend, ttl time.Duration) SlotFactory {
	return func(key string) Slot {
		return backend.SlotWithTTL(key, ttl)
	}
}

// NewSessionID returns a fresh session identifier.
func (m *Manager) NewSessionID() string {
	return uuid.NewString()
}

// Open builds the store for sessionID and hydrates it.
func (m *Manager) Open(ctx context.Context, sessionID string) *Store {
	store := NewStore(m.slots(SlotKey(m.namespace, sessionID)), m.logger.With(zap.String("session_id", sessionID)))
	store.Hydrate(ctx)
	return store
}

// End deletes the persisted record of sessionID without hydrating it.
func (m *Manager) End(ctx context.Context, sessionID string) error {
	return m.slots(SlotKey(m.namespace, sessionID)).Clear(ctx)
}
