package directory

import (
	"errors"
	"sync"

	"github.com/sq-invest/crm-service/internal/domain"
)

var (
	// ErrNotFound is returned when no entry carries the requested id.
	ErrNotFound = errors.New("directory entry not found")
	// ErrDuplicate is returned when an id or handle is already taken.
	ErrDuplicate = errors.New("directory entry already exists")
)

// Store keeps the roster of every known actor in insertion order.
type Store struct {
	mu      sync.RWMutex
	entries []domain.DirectoryEntry
}

// NewStore seeds a roster. Seed entries go through Add, so duplicates are rejected.
func NewStore(seed ...domain.DirectoryEntry) (*Store, error) {
	s := &Store{entries: make([]domain.DirectoryEntry, 0, len(seed))}
	for _, entry := range seed {
		if err := s.Add(entry); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// List returns a snapshot of the roster.
func (s *Store) List() []domain.DirectoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.DirectoryEntry, len(s.entries))
	for i, entry := range s.entries {
		out[i] = cloneEntry(entry)
	}
	return out
}

// Get returns the entry with id.
func (s *Store) Get(id string) (domain.DirectoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return domain.DirectoryEntry{}, ErrNotFound
	}
	return cloneEntry(s.entries[idx]), nil
}

// FindByHandle looks an entry up by login handle.
func (s *Store) FindByHandle(handle string) (domain.DirectoryEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.entries {
		if entry.Username == handle {
			return cloneEntry(entry), true
		}
	}
	return domain.DirectoryEntry{}, false
}

// Add appends a new entry. Ids and handles must be unused.
func (s *Store) Add(entry domain.DirectoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(entry.ID) >= 0 || s.handleTaken(entry.Username, "") {
		return ErrDuplicate
	}
	s.entries = append(s.entries, cloneEntry(entry))
	return nil
}

// Update replaces the entry matching entry.ID in place.
func (s *Store) Update(entry domain.DirectoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(entry.ID)
	if idx < 0 {
		return ErrNotFound
	}
	if s.handleTaken(entry.Username, entry.ID) {
		return ErrDuplicate
	}
	s.entries[idx] = cloneEntry(entry)
	return nil
}

// Remove deletes the entry with id; unknown ids are ignored.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
}

// Len returns the roster size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) indexOf(id string) int {
	for i, entry := range s.entries {
		if entry.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) handleTaken(handle, exceptID string) bool {
	for _, entry := range s.entries {
		if entry.Username == handle && entry.ID != exceptID {
			return true
		}
	}
	return false
}

func cloneEntry(entry domain.DirectoryEntry) domain.DirectoryEntry {
	if entry.LastLogin != nil {
		ts := *entry.LastLogin
		entry.LastLogin = &ts
	}
	return entry
}
