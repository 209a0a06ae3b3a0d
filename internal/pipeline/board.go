package pipeline

import (
	"errors"
	"sync"
	"time"

	"github.com/sq-invest/crm-service/internal/domain"
)

// ErrContactNotFound is returned when an operation targets an unknown contact.
var ErrContactNotFound = errors.New("contact not found")

// Move describes the outcome of a drag.
type Move struct {
	Contact    domain.Contact
	FromStatus domain.ContactStatus
	ToStatus   domain.ContactStatus
	Changed    bool
}

// Board is one session's working set of contacts.
type Board struct {
	mu       sync.RWMutex
	contacts []domain.Contact
}

// NewBoard copies seed into a new working set.
func NewBoard(seed []domain.Contact) *Board {
	return &Board{contacts: cloneAll(seed)}
}

// Snapshot returns a copy of the working set.
func (b *Board) Snapshot() []domain.Contact {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return cloneAll(b.contacts)
}

// Visible returns the filtered working set grouped into columns.
func (b *Board) Visible(criteria Criteria) Columns {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Group(Filter(b.contacts, criteria))
}

// Get returns the contact with id.
func (b *Board) Get(id string) (domain.Contact, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	idx := indexOf(b.contacts, id)
	if idx < 0 {
		return domain.Contact{}, ErrContactNotFound
	}
	return b.contacts[idx].Clone(), nil
}

// Move reclassifies a dragged contact. A nil dest leaves the board untouched.
func (b *Board) Move(source, dest *Bucket, id string) (Move, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	idx := indexOf(b.contacts, id)
	if idx < 0 {
		return Move{}, ErrContactNotFound
	}
	before := b.contacts[idx].Status
	b.contacts = Reclassify(b.contacts, source, dest, id)
	after := b.contacts[idx]
	return Move{
		Contact:    after.Clone(),
		FromStatus: before,
		ToStatus:   after.Status,
		Changed:    before != after.Status,
	}, nil
}

// Bulk applies action to the selected ids and returns how many contacts were affected.
func (b *Board) Bulk(ids []string, action BulkAction) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	sel := Select(ids...)
	affected := 0
	for _, c := range b.contacts {
		if sel.Has(c.ID) {
			affected++
		}
	}
	next, err := ApplyBulk(b.contacts, sel, action)
	if err != nil {
		return 0, err
	}
	b.contacts = next
	return affected, nil
}

// Add appends a contact.
func (b *Board) Add(c domain.Contact) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.contacts = append(b.contacts, c.Clone())
}

// Edit replaces the contact carrying c.ID.
func (b *Board) Edit(c domain.Contact) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	idx := indexOf(b.contacts, c.ID)
	if idx < 0 {
		return ErrContactNotFound
	}
	b.contacts[idx] = c.Clone()
	return nil
}

// Update rewrites the contact with id using fn while holding the board lock, so
// no concurrent move or bulk action is lost between the read and the write. The
// contact keeps its id whatever fn returns.
func (b *Board) Update(id string, fn func(domain.Contact) domain.Contact) (domain.Contact, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	idx := indexOf(b.contacts, id)
	if idx < 0 {
		return domain.Contact{}, ErrContactNotFound
	}
	next := fn(b.contacts[idx].Clone())
	next.ID = id
	b.contacts[idx] = next.Clone()
	return next, nil
}

func indexOf(contacts []domain.Contact, id string) int {
	for i, c := range contacts {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Registry keeps one Board per session, each seeded from a copy of the same contacts.
type Registry struct {
	mu     sync.Mutex
	seed   func() []domain.Contact
	boards map[string]*registryEntry
	now    func() time.Time
}

type registryEntry struct {
	board    *Board
	lastSeen time.Time
}

// NewRegistry builds a registry whose boards start from seed().
func NewRegistry(seed func() []domain.Contact) *Registry {
	if seed == nil {
		seed = func() []domain.Contact { return nil }
	}
	return &Registry{seed: seed, boards: make(map[string]*registryEntry), now: time.Now}
}

// Board returns the board for sessionID, creating it on first use.
func (r *Registry) Board(sessionID string) *Board {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.boards[sessionID]
	if !ok {
		entry = &registryEntry{board: NewBoard(r.seed())}
		r.boards[sessionID] = entry
	}
	entry.lastSeen = r.now()
	return entry.board
}

// Drop discards the board for sessionID.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.boards, sessionID)
}

// DropIdle discards boards not touched for longer than maxIdle and returns the
// dropped session ids. maxIdle <= 0 drops nothing.
func (r *Registry) DropIdle(maxIdle time.Duration) []string {
	if maxIdle <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-maxIdle)
	var dropped []string
	for sid, entry := range r.boards {
		if entry.lastSeen.Before(cutoff) {
			delete(r.boards, sid)
			dropped = append(dropped, sid)
		}
	}
	return dropped
}

// Len returns the number of live boards.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.boards)
}
