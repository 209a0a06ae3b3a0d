package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Namespace is the fixed key under which session actors are persisted.
const Namespace = "sqpv_user"

// SlotKey returns the persistence key for a browser session.
func SlotKey(namespace, sessionID string) string {
	if namespace == "" {
		namespace = Namespace
	}
	if sessionID == "" {
		return namespace
	}
	return namespace + ":" + sessionID
}

// Slot is a single key in durable client-side storage.
type Slot interface {
	Load(ctx context.Context) ([]byte, bool, error)
	Save(ctx context.Context, value []byte) error
	Clear(ctx context.Context) error
}

// MemoryBackend is a process-local key-value map shared by MemorySlots.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string]memoryValue
	now    func() time.Time
}

type memoryValue struct {
	data      []byte
	expiresAt time.Time
}

func (v memoryValue) expired(now time.Time) bool {
	return !v.expiresAt.IsZero() && !now.Before(v.expiresAt)
}

// MemoryOption configures a MemoryBackend.
type MemoryOption func(*MemoryBackend)

// WithClock overrides the clock used for expiry.
func WithClock(now func() time.Time) MemoryOption {
	return func(b *MemoryBackend) {
		if now != nil {
			b.now = now
		}
	}
}

// NewMemoryBackend creates an empty backend.
func NewMemoryBackend(opts ...MemoryOption) *MemoryBackend {
	b := &MemoryBackend{values: make(map[string]memoryValue), now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Slot returns the slot stored under key. Its value never expires.
func (b *MemoryBackend) Slot(key string) Slot {
	return b.SlotWithTTL(key, 0)
}

// SlotWithTTL returns the slot stored under key; every Save keeps the value for
// ttl, matching Redis SET with an expiry. ttl <= 0 keeps it until cleared.
func (b *MemoryBackend) SlotWithTTL(key string, ttl time.Duration) Slot {
	if ttl < 0 {
		ttl = 0
	}
	return &MemorySlot{backend: b, key: key, ttl: ttl}
}

// Sweep deletes expired values and returns how many were removed.
func (b *MemoryBackend) Sweep() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	removed := 0
	for key, val := range b.values {
		if val.expired(now) {
			delete(b.values, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored values, expired ones included until swept.
func (b *MemoryBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.values)
}

// MemorySlot stores its value in a MemoryBackend.
type MemorySlot struct {
	backend *MemoryBackend
	key     string
	ttl     time.Duration
}

func (s *MemorySlot) Load(_ context.Context) ([]byte, bool, error) {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	val, ok := s.backend.values[s.key]
	if !ok {
		return nil, false, nil
	}
	if val.expired(s.backend.now()) {
		delete(s.backend.values, s.key)
		return nil, false, nil
	}
	return append([]byte(nil), val.data...), true, nil
}

func (s *MemorySlot) Save(_ context.Context, value []byte) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	val := memoryValue{data: append([]byte(nil), value...)}
	if s.ttl > 0 {
		val.expiresAt = s.backend.now().Add(s.ttl)
	}
	s.backend.values[s.key] = val
	return nil
}

func (s *MemorySlot) Clear(_ context.Context) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	delete(s.backend.values, s.key)
	return nil
}

// RedisSlot stores its value in a Redis string key.
type RedisSlot struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisSlot builds a slot; ttl <= 0 keeps the key until cleared.
func NewRedisSlot(client *redis.Client, key string, ttl time.Duration) *RedisSlot {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisSlot{client: client, key: key, ttl: ttl}
}

func (s *RedisSlot) Load(ctx context.Context) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return val, true, nil
}

func (s *RedisSlot) Save(ctx context.Context, value []byte) error {
	return s.client.Set(ctx, s.key, value, s.ttl).Err()
}

func (s *RedisSlot) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}
